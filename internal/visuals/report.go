package visuals

import (
	"fmt"
	"strings"

	"drops-mcp/internal/stats"
)

// RenderQuestReport renders a quest summary as a Markdown document.
func RenderQuestReport(eventName string, s stats.QuestSummary, withCharts bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", s.Quest.Name)
	if eventName != "" {
		fmt.Fprintf(&sb, "%s / ", eventName)
	}
	fmt.Fprintf(&sb, "Lv %s / AP %d\n\n", s.Quest.Level, s.Quest.AP)

	sb.WriteString("| Reports | Valid | Excluded | Runs | Reporters | Last Updated |\n")
	sb.WriteString("|---:|---:|---:|---:|---:|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d | %s |\n\n",
		s.ReportCount, s.ValidCount, s.ExcludedCount, s.TotalRuns, s.Reporters, s.LastUpdated)

	writeStatsTable(&sb, "Materials", s.Items.Normal)
	if withCharts && len(s.Items.Normal) > 0 {
		sb.WriteString(GenerateDropRateChart("Drop Rate", s.Items.Normal))
		sb.WriteString("\n\n")
	}
	writeStatsTable(&sb, "Event Items", s.Items.EventItems)
	writeStatsTable(&sb, "Point Bonuses", s.Items.Points)
	writeStatsTable(&sb, "QP Bonuses", s.Items.QP)

	if len(s.Expected) > 0 {
		sb.WriteString("## Expected Event Items per Run\n\n")
		sb.WriteString("| Item | Slots | +0 | +6 | +12 |\n")
		sb.WriteString("|---|---:|---:|---:|---:|\n")
		for _, e := range s.Expected {
			fmt.Fprintf(&sb, "| %s | %.3f | %.2f | %.2f | %.2f |\n",
				e.BaseName, e.Slots, e.Project(0), e.Project(6), e.Project(stats.MaxEventBonus))
		}
		sb.WriteString("\n")
		if withCharts {
			sb.WriteString(GenerateExpectedChart("Expected Items by Bonus", s.Expected))
			sb.WriteString("\n\n")
		}
	}

	if len(s.Outliers) > 0 {
		sb.WriteString("## Outliers\n\n")
		sb.WriteString("| Report | Reporter | Item | Count | Runs | z |\n")
		sb.WriteString("|---|---|---|---:|---:|---:|\n")
		for _, o := range s.Outliers {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d | %d | %.2f |\n",
				o.ReportID, o.Reporter, o.ItemName, o.Value, o.RunCount, o.ZScore)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeStatsTable(sb *strings.Builder, heading string, items []stats.ItemStats) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", heading)
	sb.WriteString("| Item | Drops | Runs | Rate | 95% CI |\n")
	sb.WriteString("|---|---:|---:|---:|---|\n")
	for _, it := range items {
		fmt.Fprintf(sb, "| %s | %d | %d | %s | %s - %s |\n",
			it.ItemName, it.TotalDrops, it.TotalRuns,
			FormatPercent(it.DropRate), FormatPercent(it.CILower), FormatPercent(it.CIUpper))
	}
	sb.WriteString("\n")
}

// FormatPercent renders a rate as a percentage with one decimal.
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
