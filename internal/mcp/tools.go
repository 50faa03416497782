package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type listEventsInput struct {
	ActiveOnly bool `json:"active_only,omitempty" jsonschema:"Only return events whose period contains the current time."`
}

type eventInput struct {
	EventID string `json:"event_id" jsonschema:"Event id as returned by list_events."`
}

type questInput struct {
	EventID string `json:"event_id" jsonschema:"Event id as returned by list_events."`
	QuestID string `json:"quest_id" jsonschema:"Quest id within the event."`
}

type reporterInput struct {
	EventID string `json:"event_id" jsonschema:"Event id as returned by list_events."`
	SortKey string `json:"sort_key,omitempty" jsonschema:"Column to sort by: totalRuns (default) or reportCount."`
	SortDir string `json:"sort_dir,omitempty" jsonschema:"asc or desc (default)."`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum number of rows; 0 returns all."`
}

func (s *Server) registerTools(server *sdk.Server) {
	addTool(server, &sdk.Tool{
		Name:        "list_events",
		Description: "List the configured events, newest first, with their quests in level order and whether each event is currently running. Call this first to obtain event and quest ids.",
	}, func(ctx context.Context, in listEventsInput) (any, error) {
		return s.handleListEvents(ctx, in.ActiveOnly)
	})

	addTool(server, &sdk.Tool{
		Name: "get_quest_stats",
		Description: "Aggregate the drop reports of one quest: per-item drop rates with 95% Wilson confidence intervals, " +
			"grouped into materials, event items, point bonuses and QP bonuses, plus expected event items per run and outlier reports. " +
			"Excluded reports are left out of every figure.",
	}, func(ctx context.Context, in questInput) (any, error) {
		return s.handleGetQuestStats(ctx, in.EventID, in.QuestID)
	})

	addTool(server, &sdk.Tool{
		Name:        "get_report_outliers",
		Description: "List report cells whose per-run count deviates more than 3 standard deviations from the quest population. Small samples and rare items are never flagged.",
	}, func(ctx context.Context, in questInput) (any, error) {
		return s.handleGetReportOutliers(ctx, in.EventID, in.QuestID)
	})

	addTool(server, &sdk.Tool{
		Name:        "get_event_item_expected",
		Description: "For every quest of an event with data, the expected event items per run at bonus levels +0 to +12.",
	}, func(ctx context.Context, in eventInput) (any, error) {
		return s.handleGetEventItemExpected(ctx, in.EventID)
	})

	addTool(server, &sdk.Tool{
		Name:        "get_reporter_summary",
		Description: "Roll up the valid reports of an event by reporter: report count, total runs and per-report details.",
	}, func(ctx context.Context, in reporterInput) (any, error) {
		return s.handleGetReporterSummary(ctx, in.EventID, in.SortKey, in.SortDir, in.Limit)
	})
}

// addTool registers a handler whose result is returned as JSON text. Handler
// errors become tool error results.
func addTool[In any](server *sdk.Server, tool *sdk.Tool, handle func(context.Context, In) (any, error)) {
	sdk.AddTool(server, tool, func(ctx context.Context, req *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		logger := log.With().Str("tool", tool.Name).Str("call_id", uuid.NewString()).Logger()
		logger.Debug().Interface("input", in).Msg("Tool call received")

		start := time.Now()
		data, err := handle(ctx, in)
		if err != nil {
			logger.Warn().Err(err).Msg("Tool call failed")
			return nil, nil, err
		}

		text, err := formatResult(data)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().
			Dur("elapsed", time.Since(start)).
			Int("bytes", len(text)).
			Msg("Tool call completed")
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: text}},
		}, nil, nil
	})
}
