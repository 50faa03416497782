package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"
	"drops-mcp/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

var (
	questFormat string
	questOpen   bool
)

var questCmd = &cobra.Command{
	Use:   "quest <eventId> <questId>",
	Short: "Print the drop statistics of one quest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := questFormat
		if questOpen {
			format = formatMarkdown
		}
		out, err := renderQuest(cmd.Context(), source, itemTable, args[0], args[1], format, cfg.EnableMermaidCharts)
		if err != nil {
			return err
		}

		if !questOpen {
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		}

		if err := cfg.EnsureReportsDir(); err != nil {
			return fmt.Errorf("failed to create reports directory: %w", err)
		}
		path := reportPath(cfg.ReportsDir, args[0], args[1])
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Info().Str("path", path).Msg("Report written")
		return browser.OpenFile(path)
	},
}

// renderQuest loads one quest and renders its summary as JSON or Markdown.
func renderQuest(ctx context.Context, src dataset.Source, items *stats.ItemTable, eventID, questID, format string, charts bool) (string, error) {
	event, qd, excl, err := dataset.LoadQuest(ctx, src, eventID, questID)
	if err != nil {
		return "", err
	}
	if qd == nil {
		return "", fmt.Errorf("no data for quest %q of event %q yet", questID, eventID)
	}
	summary := stats.SummarizeQuest(*qd, excl, items)

	switch format {
	case formatMarkdown:
		return visuals.RenderQuestReport(event.Name, summary, charts), nil
	case formatJSON, "":
		out, err := jsonString(summary)
		if err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or markdown)", format)
	}
}

func reportPath(dir, eventID, questID string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.md", eventID, questID))
}

func init() {
	questCmd.Flags().StringVar(&questFormat, "format", formatJSON, "output format: json or markdown")
	questCmd.Flags().BoolVar(&questOpen, "open", false, "write a Markdown report to REPORTS_DIR and open it")
}
