package mcp

import (
	"context"
	"fmt"

	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"
	"drops-mcp/internal/visuals"
)

type eventView struct {
	EventID    string            `json:"eventId"`
	Name       string            `json:"name"`
	Period     stats.EventPeriod `json:"period"`
	Active     bool              `json:"active"`
	Quests     []stats.Quest     `json:"quests"`
	EventItems []string          `json:"eventItems,omitempty"`
}

func (s *Server) handleListEvents(ctx context.Context, activeOnly bool) (any, error) {
	events, err := s.source.Events(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]eventView, 0, len(events))
	for _, e := range stats.SortEventsByStart(events) {
		active := e.Period.IsActive(now)
		if activeOnly && !active {
			continue
		}
		views = append(views, eventView{
			EventID:    e.EventID,
			Name:       e.Name,
			Period:     e.Period,
			Active:     active,
			Quests:     stats.SortQuestsByLevel(e.Quests),
			EventItems: e.EventItems,
		})
	}

	var warnings []string
	if len(views) == 0 {
		warnings = append(warnings, "no events matched")
	}
	return WrapResponse(views, nil, warnings), nil
}

type noteView struct {
	ReportID string   `json:"reportId"`
	Reporter string   `json:"reporter"`
	Note     string   `json:"note"`
	Links    []string `json:"links,omitempty"`
}

type excludedView struct {
	ReportID string `json:"reportId"`
	Reporter string `json:"reporter"`
	Reason   string `json:"reason"`
}

type questStatsView struct {
	EventID string `json:"eventId"`
	stats.QuestSummary
	Excluded []excludedView `json:"excluded,omitempty"`
	Notes    []noteView     `json:"notes,omitempty"`
}

// loadQuest resolves a quest and fails when it has no data yet.
func (s *Server) loadQuest(ctx context.Context, eventID, questID string) (stats.Event, *stats.QuestData, []stats.Exclusion, error) {
	event, qd, excl, err := dataset.LoadQuest(ctx, s.source, eventID, questID)
	if err != nil {
		return event, nil, nil, err
	}
	if qd == nil {
		return event, nil, nil, fmt.Errorf("no data for quest %q of event %q yet", questID, eventID)
	}
	return event, qd, excl, nil
}

func (s *Server) handleGetQuestStats(ctx context.Context, eventID, questID string) (any, error) {
	event, qd, excl, err := s.loadQuest(ctx, eventID, questID)
	if err != nil {
		return nil, err
	}

	summary := stats.SummarizeQuest(*qd, excl, s.items)
	view := questStatsView{EventID: event.EventID, QuestSummary: summary}
	set := stats.NewExclusionSet(excl)
	for _, r := range qd.Reports {
		if reason, ok := set.Reason(r.ID); ok {
			view.Excluded = append(view.Excluded, excludedView{
				ReportID: r.ID,
				Reporter: stats.ReporterName(r),
				Reason:   reason,
			})
		}
	}
	for _, r := range stats.ValidReports(qd.Reports, excl) {
		if r.Note == "" {
			continue
		}
		view.Notes = append(view.Notes, noteView{
			ReportID: r.ID,
			Reporter: stats.ReporterName(r),
			Note:     r.Note,
			Links:    stats.NoteLinks(r.Note),
		})
	}

	var warnings []string
	if s.items.Len() == 0 {
		warnings = append(warnings, "item table is empty; normal materials are omitted")
	}
	if summary.ValidCount == 0 {
		warnings = append(warnings, "every report of this quest is excluded")
	}

	var charts map[string]string
	if s.chartsEnabled() {
		charts = map[string]string{
			"drop_rate": visuals.GenerateDropRateChart(summary.Quest.Name, summary.Items.Normal),
			"expected":  visuals.GenerateExpectedChart(summary.Quest.Name, summary.Expected),
		}
	}
	return WrapResponse(view, charts, warnings), nil
}

func (s *Server) handleGetReportOutliers(ctx context.Context, eventID, questID string) (any, error) {
	_, qd, excl, err := s.loadQuest(ctx, eventID, questID)
	if err != nil {
		return nil, err
	}
	flags := stats.DetectOutliers(qd.Reports, excl)
	if flags == nil {
		flags = []stats.OutlierFlag{}
	}
	return WrapResponse(flags, nil, nil), nil
}
