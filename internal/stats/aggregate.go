package stats

import (
	"math"
	"sort"
)

// WilsonZ is the normal quantile for a two-sided 95% interval.
const WilsonZ = 1.96

// WilsonInterval returns the Wilson score interval for successes out of n
// trials, clamped to [0, 1]. Both bounds are 0 when n is 0. Stackable items
// can report more drops than runs; the radicand is floored at 0 there so the
// bounds stay finite.
func WilsonInterval(successes, n int) (lower, upper float64) {
	if n == 0 {
		return 0, 0
	}
	nf := float64(n)
	p := float64(successes) / nf
	z2 := WilsonZ * WilsonZ
	denom := 1 + z2/nf
	centre := (p + z2/(2*nf)) / denom
	margin := (WilsonZ / denom) * math.Sqrt(math.Max(0, p*(1-p)/nf+z2/(4*nf*nf)))
	return clamp01(centre - margin), clamp01(centre + margin)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Aggregate computes per-item drop totals, drop rates and 95% Wilson bounds
// over the non-excluded reports. A report whose value for an item is absent
// contributes neither drops nor runs to that item. Results are sorted by item
// name.
func Aggregate(reports []Report, exclusions []Exclusion) []ItemStats {
	valid := ValidReports(reports, exclusions)
	names := itemNames(valid)

	result := make([]ItemStats, 0, len(names))
	for _, name := range names {
		totalDrops, totalRuns := 0, 0
		for _, r := range valid {
			n, ok := r.Items[name].Get()
			if !ok {
				continue
			}
			totalDrops += n
			totalRuns += r.RunCount
		}
		result = append(result, newItemStats(name, totalDrops, totalRuns))
	}
	return result
}

func newItemStats(name string, totalDrops, totalRuns int) ItemStats {
	lower, upper := WilsonInterval(totalDrops, totalRuns)
	rate := 0.0
	if totalRuns > 0 {
		rate = float64(totalDrops) / float64(totalRuns)
	}
	return ItemStats{
		ItemName:   name,
		TotalDrops: totalDrops,
		TotalRuns:  totalRuns,
		DropRate:   rate,
		CILower:    lower,
		CIUpper:    upper,
	}
}

// MergeItemStats sums the totals of matching items and recomputes the derived
// rate and interval. Aggregating disjoint report sets and merging equals
// aggregating their concatenation.
func MergeItemStats(sets ...[]ItemStats) []ItemStats {
	type totals struct {
		name        string
		drops, runs int
	}
	groups := newGroupMap[totals]()
	for _, set := range sets {
		for _, s := range set {
			groups.merge(s.ItemName, func() totals { return totals{name: s.ItemName} }, func(t *totals) {
				t.drops += s.TotalDrops
				t.runs += s.TotalRuns
			})
		}
	}

	merged := make([]ItemStats, 0, groups.len())
	for _, t := range groups.values() {
		merged = append(merged, newItemStats(t.name, t.drops, t.runs))
	}
	sortStatsByName(merged)
	return merged
}

func sortStatsByName(s []ItemStats) {
	sort.Slice(s, func(i, j int) bool { return s[i].ItemName < s[j].ItemName })
}
