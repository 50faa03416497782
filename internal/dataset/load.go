package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"drops-mcp/internal/stats"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel quest fetches when the caller gives none.
const DefaultConcurrency = 4

// EventData is one event with every quest that has published data.
type EventData struct {
	Event      stats.Event
	Quests     []stats.QuestData
	Exclusions stats.ExclusionsMap
}

// FindEvent looks an event up by id.
func FindEvent(events []stats.Event, eventID string) (stats.Event, error) {
	for _, e := range events {
		if e.EventID == eventID {
			return e, nil
		}
	}
	return stats.Event{}, fmt.Errorf("event %q: %w", eventID, ErrNotFound)
}

// LoadEvent fetches the exclusions and the quest documents of one event.
// Quests without data are left out; the rest keep ascending level order.
func LoadEvent(ctx context.Context, src Source, eventID string, concurrency int) (*EventData, error) {
	events, err := src.Events(ctx)
	if err != nil {
		return nil, err
	}
	event, err := FindEvent(events, eventID)
	if err != nil {
		return nil, err
	}
	excl, err := src.Exclusions(ctx)
	if err != nil {
		return nil, err
	}

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	quests := stats.SortQuestsByLevel(event.Quests)
	results := make([]*stats.QuestData, len(quests))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, q := range quests {
		g.Go(func() error {
			qd, err := src.QuestData(gctx, event.EventID, q.QuestID)
			if err != nil {
				return fmt.Errorf("quest %s: %w", q.QuestID, err)
			}
			if qd != nil {
				results[i] = withQuest(qd, q)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &EventData{Event: event, Exclusions: excl}
	for _, qd := range results {
		if qd != nil {
			data.Quests = append(data.Quests, *qd)
		}
	}
	log.Info().
		Str("event_id", eventID).
		Int("quests", len(quests)).
		Int("with_data", len(data.Quests)).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded event data")
	return data, nil
}

// LoadQuest fetches one quest of an event together with its exclusion list.
// The returned QuestData is nil when the quest has no data yet.
func LoadQuest(ctx context.Context, src Source, eventID, questID string) (stats.Event, *stats.QuestData, []stats.Exclusion, error) {
	events, err := src.Events(ctx)
	if err != nil {
		return stats.Event{}, nil, nil, err
	}
	event, err := FindEvent(events, eventID)
	if err != nil {
		return stats.Event{}, nil, nil, err
	}
	quest, ok := event.FindQuest(questID)
	if !ok {
		return event, nil, nil, fmt.Errorf("quest %q in event %q: %w", questID, eventID, ErrNotFound)
	}
	excl, err := src.Exclusions(ctx)
	if err != nil {
		return event, nil, nil, err
	}
	qd, err := src.QuestData(ctx, eventID, questID)
	if err != nil {
		return event, nil, nil, err
	}
	if qd != nil {
		qd = withQuest(qd, quest)
	}
	return event, qd, excl.ForQuest(questID), nil
}

// withQuest returns a copy of qd carrying the event's quest metadata, which
// is authoritative over the document's own header. Sources may share qd.
func withQuest(qd *stats.QuestData, q stats.Quest) *stats.QuestData {
	copied := *qd
	copied.Quest = q
	return &copied
}

// LoadItemTable reads the item priority table. An empty path yields an empty
// table, which makes every normal item unknown. Rows failing validation are
// skipped.
func LoadItemTable(path string) (*stats.ItemTable, error) {
	if path == "" {
		return stats.NewItemTable(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item table: %w", err)
	}
	var rows []stats.ItemPriority
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode item table: %w", err)
	}

	kept := rows[:0]
	for _, row := range rows {
		if err := validate.Struct(row); err != nil {
			log.Warn().Err(err).Str("item", row.ShortName).Msg("Skipping invalid item table row")
			continue
		}
		kept = append(kept, row)
	}
	log.Debug().Str("path", path).Int("items", len(kept)).Msg("Loaded item table")
	return stats.NewItemTable(kept), nil
}
