package stats

import (
	"math"
	"sort"
)

// Outlier gates. A cell is only scored when the report and the population are
// large enough for a per-run rate to be meaningful.
const (
	MinOutlierRunCount    = 20
	MinOutlierSampleCount = 5
	MinNormalDropRate     = 0.2
	OutlierZThreshold     = 3.0

	stdDevEpsilon = 1e-9
)

// CalcOutlierStats computes the population mean and standard deviation of the
// per-run rate (value / runCount) of each item over the non-excluded reports
// that tracked it. Reports with a zero run count carry no rate and are
// skipped. Items with no samples get all-zero stats. Results are sorted by
// item name.
func CalcOutlierStats(reports []Report, exclusions []Exclusion) []ItemOutlierStats {
	valid := ValidReports(reports, exclusions)
	names := itemNames(valid)

	result := make([]ItemOutlierStats, 0, len(names))
	for _, name := range names {
		var samples []float64
		for _, r := range valid {
			n, ok := r.Items[name].Get()
			if !ok || r.RunCount == 0 {
				continue
			}
			samples = append(samples, float64(n)/float64(r.RunCount))
		}
		mean, stdDev := meanStdDev(samples)
		result = append(result, ItemOutlierStats{
			ItemName:    name,
			Mean:        mean,
			StdDev:      stdDev,
			SampleCount: len(samples),
		})
	}
	return result
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// IsOutlier scores one report cell against the item population. It returns
// the z-score and true only when |z| exceeds OutlierZThreshold; every gate
// that fails yields (0, false), meaning "no verdict".
//
// Normal materials with a population drop rate below MinNormalDropRate are
// never scored. Event items and bonuses are scored regardless of rate.
func IsOutlier(value DropCount, runCount int, pop ItemOutlierStats, itemDropRate float64) (float64, bool) {
	n, ok := value.Get()
	if !ok {
		return 0, false
	}
	if runCount < MinOutlierRunCount {
		return 0, false
	}
	if pop.SampleCount < MinOutlierSampleCount {
		return 0, false
	}
	if pop.StdDev < stdDevEpsilon {
		return 0, false
	}
	if Classify(pop.ItemName).Kind == KindNormal && itemDropRate < MinNormalDropRate {
		return 0, false
	}

	perRun := float64(n) / float64(runCount)
	z := (perRun - pop.Mean) / pop.StdDev
	if math.Abs(z) > OutlierZThreshold {
		return z, true
	}
	return 0, false
}

// OutlierFlag marks a single report cell whose per-run rate is anomalous.
type OutlierFlag struct {
	ReportID string  `json:"reportId"`
	Reporter string  `json:"reporter"`
	ItemName string  `json:"itemName"`
	Value    int     `json:"value"`
	RunCount int     `json:"runcount"`
	PerRun   float64 `json:"perRun"`
	ZScore   float64 `json:"zScore"`
}

// DetectOutliers scores every (valid report, item) cell of a quest and
// returns the flagged ones ordered by report then item name.
func DetectOutliers(reports []Report, exclusions []Exclusion) []OutlierFlag {
	itemStats := Aggregate(reports, exclusions)
	rates := make(map[string]float64, len(itemStats))
	for _, s := range itemStats {
		rates[s.ItemName] = s.DropRate
	}

	var flags []OutlierFlag
	population := CalcOutlierStats(reports, exclusions)
	valid := ValidReports(reports, exclusions)
	for _, r := range valid {
		for _, pop := range population {
			value, tracked := r.Items[pop.ItemName]
			if !tracked {
				continue
			}
			z, ok := IsOutlier(value, r.RunCount, pop, rates[pop.ItemName])
			if !ok {
				continue
			}
			n, _ := value.Get()
			flags = append(flags, OutlierFlag{
				ReportID: r.ID,
				Reporter: ReporterName(r),
				ItemName: pop.ItemName,
				Value:    n,
				RunCount: r.RunCount,
				PerRun:   float64(n) / float64(r.RunCount),
				ZScore:   z,
			})
		}
	}

	// population is name-sorted, so a stable sort by report keeps item order.
	sort.SliceStable(flags, func(i, j int) bool { return flags[i].ReportID < flags[j].ReportID })
	return flags
}
