package stats

import (
	"github.com/ahmetb/go-linq/v3"
)

// QuestSummary is the full computed view of one quest.
type QuestSummary struct {
	Quest         Quest               `json:"quest"`
	LastUpdated   string              `json:"lastUpdated"`
	ReportCount   int                 `json:"reportCount"`
	ValidCount    int                 `json:"validCount"`
	ExcludedCount int                 `json:"excludedCount"`
	TotalRuns     int                 `json:"totalRuns"`
	Reporters     int                 `json:"reporters"`
	Items         ClassifiedStats     `json:"items"`
	Expected      []EventItemExpected `json:"expected"`
	Outliers      []OutlierFlag       `json:"outliers"`
}

// SummarizeQuest runs every per-quest pass over one quest document.
func SummarizeQuest(qd QuestData, exclusions []Exclusion, table *ItemTable) QuestSummary {
	valid := ValidReports(qd.Reports, exclusions)
	itemStats := Aggregate(qd.Reports, exclusions)
	classified := ClassifyItems(itemStats, table)

	totalRuns := linq.From(valid).
		SelectT(func(r Report) int { return r.RunCount }).
		SumInts()
	reporters := linq.From(valid).
		SelectT(func(r Report) string { return ReporterName(r) }).
		Distinct().
		Count()

	return QuestSummary{
		Quest:         qd.Quest,
		LastUpdated:   qd.LastUpdated,
		ReportCount:   len(qd.Reports),
		ValidCount:    len(valid),
		ExcludedCount: len(qd.Reports) - len(valid),
		TotalRuns:     int(totalRuns),
		Reporters:     reporters,
		Items:         classified,
		Expected:      CalcEventItemExpected(classified.EventItems),
		Outliers:      DetectOutliers(qd.Reports, exclusions),
	}
}
