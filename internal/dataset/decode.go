package dataset

import (
	"fmt"

	"drops-mcp/internal/stats"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeDocument checks data against the schema of kind before decoding it
// into v.
func decodeDocument(kind DocumentKind, data []byte, v any) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid %s document: %w", kind, err)
	}
	if err := ValidateDocument(kind, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s document: %w", kind, err)
	}
	return nil
}

type eventsDocument struct {
	Events []stats.Event `json:"events"`
}

func decodeEvents(data []byte) ([]stats.Event, error) {
	var doc eventsDocument
	if err := decodeDocument(KindEvents, data, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Events {
		if err := validate.Struct(doc.Events[i]); err != nil {
			return nil, fmt.Errorf("invalid event at index %d: %w", i, err)
		}
	}
	return doc.Events, nil
}

func decodeExclusions(data []byte) (stats.ExclusionsMap, error) {
	excl := stats.ExclusionsMap{}
	if err := decodeDocument(KindExclusions, data, &excl); err != nil {
		return nil, err
	}
	for questID, list := range excl {
		kept := list[:0]
		for _, e := range list {
			if err := validate.Struct(e); err != nil {
				log.Warn().Err(err).Str("quest_id", questID).Msg("Dropping invalid exclusion")
				continue
			}
			kept = append(kept, e)
		}
		excl[questID] = kept
	}
	return excl, nil
}

type questDocument struct {
	Quest       stats.Quest       `json:"quest"`
	LastUpdated string            `json:"lastUpdated"`
	Reports     []json.RawMessage `json:"reports"`
}

// decodeQuestData drops reports that fail validation instead of rejecting the
// whole document.
func decodeQuestData(data []byte) (*stats.QuestData, error) {
	var doc questDocument
	if err := decodeDocument(KindQuest, data, &doc); err != nil {
		return nil, err
	}
	if err := validate.Struct(doc.Quest); err != nil {
		return nil, fmt.Errorf("invalid quest: %w", err)
	}

	qd := &stats.QuestData{
		Quest:       doc.Quest,
		LastUpdated: doc.LastUpdated,
		Reports:     make([]stats.Report, 0, len(doc.Reports)),
	}
	for i, raw := range doc.Reports {
		r, err := decodeReport(raw)
		if err != nil {
			log.Warn().
				Err(err).
				Str("quest_id", doc.Quest.QuestID).
				Int("index", i).
				Str("report_id", r.ID).
				Msg("Dropping invalid report")
			continue
		}
		qd.Reports = append(qd.Reports, r)
	}
	return qd, nil
}

// decodeReport checks one report against its schema and struct tags. The id is
// filled in on failure when it could be read, for logging.
func decodeReport(raw []byte) (stats.Report, error) {
	var r stats.Report
	if err := decodeDocument(KindReport, raw, &r); err != nil {
		var id struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(raw, &id)
		return stats.Report{ID: id.ID}, err
	}
	if err := validate.Struct(r); err != nil {
		return r, err
	}
	return r, nil
}
