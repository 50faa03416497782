package visuals

import (
	"fmt"
	"math"
	"strings"

	"drops-mcp/internal/stats"
)

// MaxChartBars caps the number of bars in a chart to keep it legible.
const MaxChartBars = 20

func quoteLabel(s string) string {
	return fmt.Sprintf("\"%s\"", strings.ReplaceAll(s, "\"", "'"))
}

// GenerateDropRateChart creates a Mermaid bar chart of drop rates in percent.
func GenerateDropRateChart(title string, items []stats.ItemStats) string {
	if len(items) == 0 {
		return ""
	}

	limit := min(len(items), MaxChartBars)

	var labels []string
	var values []string
	maxVal := 0.0
	for _, item := range items[:limit] {
		rate := item.DropRate * 100
		labels = append(labels, quoteLabel(item.ItemName))
		values = append(values, fmt.Sprintf("%.1f", rate))
		if rate > maxVal {
			maxVal = rate
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quoteLabel(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Drop Rate (%%)\" 0 --> %d\n", int(math.Max(1, math.Ceil(maxVal*1.1)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateExpectedChart creates a Mermaid line chart of expected event items per
// run over bonus levels, one line per item in input order.
func GenerateExpectedChart(title string, expected []stats.EventItemExpected) string {
	if len(expected) == 0 {
		return ""
	}

	var labels []string
	for bonus := 0; bonus <= stats.MaxEventBonus; bonus++ {
		labels = append(labels, fmt.Sprintf("\"+%d\"", bonus))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quoteLabel(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))

	maxY := 0.0
	for _, e := range expected {
		maxY = math.Max(maxY, e.Project(stats.MaxEventBonus))
	}
	sb.WriteString(fmt.Sprintf("    y-axis \"Items per Run\" 0 --> %d\n", int(math.Max(1, math.Ceil(maxY*1.1)))))

	for _, e := range expected {
		var points []string
		for _, v := range e.Curve() {
			points = append(points, fmt.Sprintf("%.2f", v))
		}
		sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(points, ", ")))
	}
	sb.WriteString("```")
	return sb.String()
}
