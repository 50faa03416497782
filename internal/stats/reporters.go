package stats

import (
	"sort"
	"strings"
)

// AnonymousReporter is the identity used when a report names no reporter.
const AnonymousReporter = "匿名"

// ReporterName resolves a report's display identity: reporterName, then
// reporter, then AnonymousReporter.
func ReporterName(r Report) string {
	if r.ReporterName != "" {
		return r.ReporterName
	}
	if r.Reporter != "" {
		return r.Reporter
	}
	return AnonymousReporter
}

// ReportDetail is one contributing report of a reporter row.
type ReportDetail struct {
	ReportID  string               `json:"reportId"`
	QuestName string               `json:"questName"`
	RunCount  int                  `json:"runcount"`
	Items     map[string]DropCount `json:"items"`
	Timestamp string               `json:"timestamp"`
}

// ReporterRow aggregates the valid reports of one reporter across an event.
type ReporterRow struct {
	Reporter    string         `json:"reporter"`
	XID         string         `json:"xId"` // raw reporter field of the first report seen
	ReportCount int            `json:"reportCount"`
	TotalRuns   int            `json:"totalRuns"`
	Details     []ReportDetail `json:"details"`
}

// AggregateReporters groups the valid reports of every quest by reporter
// identity. Each quest is filtered with its own exclusion list. Rows come out
// in first-seen order; use SortRows for a defined order.
func AggregateReporters(quests []QuestData, exclusions ExclusionsMap) []ReporterRow {
	rows := newGroupMap[ReporterRow]()
	for _, qd := range quests {
		for _, r := range ValidReports(qd.Reports, exclusions.ForQuest(qd.Quest.QuestID)) {
			name := ReporterName(r)
			rows.merge(name, func() ReporterRow {
				return ReporterRow{Reporter: name, XID: r.Reporter}
			}, func(row *ReporterRow) {
				row.ReportCount++
				row.TotalRuns += r.RunCount
				row.Details = append(row.Details, ReportDetail{
					ReportID:  r.ID,
					QuestName: qd.Quest.Name,
					RunCount:  r.RunCount,
					Items:     r.Items,
					Timestamp: r.Timestamp,
				})
			})
		}
	}
	return rows.values()
}

// SortKey selects the numeric column used to order reporter rows.
type SortKey string

const (
	SortByReportCount SortKey = "reportCount"
	SortByTotalRuns   SortKey = "totalRuns"
)

// ParseSortKey maps a column name (any case) to a sort key. Unknown names
// select total runs.
func ParseSortKey(s string) SortKey {
	if strings.EqualFold(s, string(SortByReportCount)) {
		return SortByReportCount
	}
	return SortByTotalRuns
}

// SortDir is a sort direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// ParseSortDir maps "asc"/"desc" (any case) to a direction, falling back to def.
func ParseSortDir(s string, def SortDir) SortDir {
	switch strings.ToLower(s) {
	case string(Asc):
		return Asc
	case string(Desc):
		return Desc
	}
	return def
}

// SortState is a column and direction.
type SortState struct {
	Key SortKey `json:"key"`
	Dir SortDir `json:"dir"`
}

// DefaultReporterSort orders the busiest reporters first.
var DefaultReporterSort = SortState{Key: SortByTotalRuns, Dir: Desc}

// SortRows returns a stably sorted copy of rows. Unknown keys fall back to
// total runs.
func SortRows(rows []ReporterRow, s SortState) []ReporterRow {
	sorted := make([]ReporterRow, len(rows))
	copy(sorted, rows)

	value := func(r ReporterRow) int {
		if s.Key == SortByReportCount {
			return r.ReportCount
		}
		return r.TotalRuns
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if s.Dir == Asc {
			return value(sorted[i]) < value(sorted[j])
		}
		return value(sorted[i]) > value(sorted[j])
	})
	return sorted
}

// ReportSortKey selects the column used by SortReports.
type ReportSortKey string

const (
	SortReportsByReporter  ReportSortKey = "reporter"
	SortReportsByRunCount  ReportSortKey = "runcount"
	SortReportsByTimestamp ReportSortKey = "timestamp"
)

// SortReports returns a stably sorted copy of reports.
func SortReports(reports []Report, key ReportSortKey, dir SortDir) []Report {
	sorted := make([]Report, len(reports))
	copy(sorted, reports)

	cmp := func(a, b Report) int {
		switch key {
		case SortReportsByReporter:
			return strings.Compare(ReporterName(a), ReporterName(b))
		case SortReportsByRunCount:
			return a.RunCount - b.RunCount
		case SortReportsByTimestamp:
			return strings.Compare(a.Timestamp, b.Timestamp)
		}
		return 0
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == Asc {
			return cmp(sorted[i], sorted[j]) < 0
		}
		return cmp(sorted[i], sorted[j]) > 0
	})
	return sorted
}
