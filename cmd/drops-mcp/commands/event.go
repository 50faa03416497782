package commands

import (
	"fmt"

	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"

	"github.com/spf13/cobra"
)

var (
	reportersSort string
	reportersAsc  bool
)

var expectedCmd = &cobra.Command{
	Use:   "expected <eventId>",
	Short: "Print expected event items per run for every quest of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataset.LoadEvent(cmd.Context(), source, args[0], cfg.Dataset.Concurrency)
		if err != nil {
			return err
		}

		type questExpected struct {
			Quest    stats.Quest               `json:"quest"`
			Expected []stats.EventItemExpected `json:"expected"`
		}
		var out []questExpected
		for _, qd := range data.Quests {
			excl := data.Exclusions.ForQuest(qd.Quest.QuestID)
			classified := stats.ClassifyItems(stats.Aggregate(qd.Reports, excl), itemTable)
			out = append(out, questExpected{
				Quest:    qd.Quest,
				Expected: stats.CalcEventItemExpected(classified.EventItems),
			})
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var reportersCmd = &cobra.Command{
	Use:   "reporters <eventId>",
	Short: "Print the per-reporter rollup of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataset.LoadEvent(cmd.Context(), source, args[0], cfg.Dataset.Concurrency)
		if err != nil {
			return err
		}

		dir := stats.Desc
		if reportersAsc {
			dir = stats.Asc
		}
		state := stats.SortState{Key: stats.ParseSortKey(reportersSort), Dir: dir}
		rows := stats.SortRows(stats.AggregateReporters(data.Quests, data.Exclusions), state)
		return printJSON(cmd.OutOrStdout(), rows)
	},
}

var schemaCmd = &cobra.Command{
	Use:       "schema [events|exclusions|quest|report]",
	Short:     "Print the JSON Schema of a published document",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(dataset.KindEvents), string(dataset.KindExclusions), string(dataset.KindQuest), string(dataset.KindReport)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := dataset.Kinds()
		if len(args) == 1 {
			kinds = []dataset.DocumentKind{dataset.DocumentKind(args[0])}
		}

		schemas := make(map[string]any, len(kinds))
		for _, kind := range kinds {
			s, err := dataset.Schema(kind)
			if err != nil {
				return fmt.Errorf("%w (known: events, exclusions, quest, report)", err)
			}
			schemas[string(kind)] = s
		}
		if len(args) == 1 {
			return printJSON(cmd.OutOrStdout(), schemas[args[0]])
		}
		return printJSON(cmd.OutOrStdout(), schemas)
	},
}

func init() {
	reportersCmd.Flags().StringVar(&reportersSort, "sort", string(stats.SortByTotalRuns), "sort column: totalRuns or reportCount")
	reportersCmd.Flags().BoolVar(&reportersAsc, "asc", false, "sort ascending")
}
