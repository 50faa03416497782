package mcp

import (
	"context"
	"fmt"
	"time"

	"drops-mcp/internal/config"
	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"
)

type memSource struct {
	events     []stats.Event
	exclusions stats.ExclusionsMap
	quests     map[string]stats.QuestData // keyed by eventId/questId
}

func (m *memSource) Events(ctx context.Context) ([]stats.Event, error) {
	return m.events, nil
}

func (m *memSource) Exclusions(ctx context.Context) (stats.ExclusionsMap, error) {
	return m.exclusions, nil
}

func (m *memSource) QuestData(ctx context.Context, eventID, questID string) (*stats.QuestData, error) {
	qd, ok := m.quests[eventID+"/"+questID]
	if !ok {
		return nil, nil
	}
	return &qd, nil
}

var testNow = time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)

// newTestServer builds a server over two events. In ev-summer, q-expert holds
// eleven reports of which r10 is a 鉄杭 outlier and r11 is excluded; q-hard
// has no data.
func newTestServer(charts bool) *Server {
	quests := []stats.Quest{
		{QuestID: "q-expert", Name: "Expert", Level: "90+", AP: 40},
		{QuestID: "q-hard", Name: "Hard", Level: "80", AP: 30},
	}
	events := []stats.Event{
		{
			EventID: "ev-spring", Name: "Spring",
			Period: stats.EventPeriod{Start: "2026-04-01T00:00:00Z", End: "2026-04-15T00:00:00Z"},
			Quests: []stats.Quest{{QuestID: "q1", Name: "Old", Level: "90", AP: 40}},
		},
		{
			EventID: "ev-summer", Name: "Summer",
			Period: stats.EventPeriod{Start: "2026-08-01T00:00:00Z", End: "2026-08-15T00:00:00Z"},
			Quests: quests,
		},
	}

	var reports []stats.Report
	for i := 0; i < 10; i++ {
		reports = append(reports, stats.Report{
			ID:           fmt.Sprintf("r%02d", i),
			Reporter:     fmt.Sprintf("u%d", i%2),
			ReporterName: fmt.Sprintf("User %d", i%2),
			RunCount:     100,
			Note:         "",
			Items: map[string]stats.DropCount{
				"鉄杭":      stats.Count(30),
				"ミトン(x3)": stats.Count(50),
				"骨":       stats.Absent(),
			},
		})
	}
	reports[0].Note = "screenshot https://example.com/shot.png."
	reports = append(reports,
		stats.Report{
			ID: "r10", Reporter: "u9", ReporterName: "Lucky", RunCount: 100,
			Items: map[string]stats.DropCount{"鉄杭": stats.Count(100), "ミトン(x3)": stats.Count(50)},
		},
		stats.Report{
			ID: "r11", Reporter: "u9", RunCount: 100,
			Items: map[string]stats.DropCount{"鉄杭": stats.Count(1000)},
		},
	)

	src := &memSource{
		events: events,
		exclusions: stats.ExclusionsMap{
			"q-expert": {{ReportID: "r11", Reason: "impossible count"}},
		},
		quests: map[string]stats.QuestData{
			"ev-summer/q-expert": {Quest: quests[0], LastUpdated: "2026-08-05T00:00:00Z", Reports: reports},
		},
	}

	items := stats.NewItemTable([]stats.ItemPriority{
		{ID: 6503, ShortName: "鉄杭", DropPriority: 8300},
		{ID: 6512, ShortName: "骨", DropPriority: 8300},
	})
	cfg := &config.AppConfig{
		Dataset:             dataset.Config{Concurrency: 2},
		EnableMermaidCharts: charts,
	}

	s := NewServer(cfg, src, items)
	s.now = func() time.Time { return testNow }
	return s
}
