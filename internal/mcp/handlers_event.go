package mcp

import (
	"context"
	"fmt"

	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"
	"drops-mcp/internal/visuals"
)

type expectedView struct {
	stats.EventItemExpected
	Projection []float64 `json:"curve"`
}

type questExpectedView struct {
	Quest    stats.Quest    `json:"quest"`
	Expected []expectedView `json:"expected"`
}

func (s *Server) loadEvent(ctx context.Context, eventID string) (*dataset.EventData, error) {
	data, err := dataset.LoadEvent(ctx, s.source, eventID, s.concurrency())
	if err != nil {
		return nil, err
	}
	if len(data.Quests) == 0 {
		return nil, fmt.Errorf("no data for event %q yet", eventID)
	}
	return data, nil
}

func (s *Server) handleGetEventItemExpected(ctx context.Context, eventID string) (any, error) {
	data, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	views := make([]questExpectedView, 0, len(data.Quests))
	byQuest := make(map[string][]stats.EventItemExpected, len(data.Quests))
	for _, qd := range data.Quests {
		excl := data.Exclusions.ForQuest(qd.Quest.QuestID)
		classified := stats.ClassifyItems(stats.Aggregate(qd.Reports, excl), s.items)
		expected := stats.CalcEventItemExpected(classified.EventItems)
		byQuest[qd.Quest.QuestID] = expected

		view := questExpectedView{Quest: qd.Quest, Expected: make([]expectedView, 0, len(expected))}
		for _, e := range expected {
			view.Expected = append(view.Expected, expectedView{EventItemExpected: e, Projection: e.Curve()})
		}
		views = append(views, view)
	}

	var charts map[string]string
	if s.chartsEnabled() {
		quests := make([]stats.Quest, 0, len(data.Quests))
		for _, qd := range data.Quests {
			quests = append(quests, qd.Quest)
		}
		if top, ok := stats.HighestQuest(quests); ok {
			charts = map[string]string{
				"expected": visuals.GenerateExpectedChart(top.Name, byQuest[top.QuestID]),
			}
		}
	}
	return WrapResponse(views, charts, nil), nil
}

type reporterSummaryView struct {
	EventID string              `json:"eventId"`
	Sort    stats.SortState     `json:"sort"`
	Total   int                 `json:"total"`
	Rows    []stats.ReporterRow `json:"rows"`
}

func (s *Server) handleGetReporterSummary(ctx context.Context, eventID, sortKey, sortDir string, limit int) (any, error) {
	data, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	state := stats.SortState{
		Key: stats.ParseSortKey(sortKey),
		Dir: stats.ParseSortDir(sortDir, stats.DefaultReporterSort.Dir),
	}
	rows := stats.SortRows(stats.AggregateReporters(data.Quests, data.Exclusions), state)
	total := len(rows)
	if limit > 0 && limit < total {
		rows = rows[:limit]
	}

	return WrapResponse(reporterSummaryView{
		EventID: eventID,
		Sort:    state,
		Total:   total,
		Rows:    rows,
	}, nil, nil), nil
}
