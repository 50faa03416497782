package stats

import "sort"

// MaxEventBonus is the highest event bonus level projected by Curve.
const MaxEventBonus = 12

// EventItemExpected is the per-run slot expectation of one event item,
// summed over its box-count variants.
//
// Slots is the expected number of drop slots per run and Base the expected
// item count per run without bonus; each slot yields one extra item per bonus
// level.
type EventItemExpected struct {
	BaseName   string  `json:"baseName"`
	TotalRuns  int     `json:"totalRuns"`
	TotalSlots int     `json:"totalSlots"`
	Slots      float64 `json:"slots"`
	Base       float64 `json:"base"`
}

// Project returns the expected items per run at a bonus level.
func (e EventItemExpected) Project(bonus int) float64 {
	return e.Base + e.Slots*float64(bonus)
}

// Curve projects bonus levels 0 through MaxEventBonus.
func (e EventItemExpected) Curve() []float64 {
	curve := make([]float64, MaxEventBonus+1)
	for bonus := range curve {
		curve[bonus] = e.Project(bonus)
	}
	return curve
}

// CalcEventItemExpected groups event-item stats by base name. Variants with
// zero runs are skipped.
//
// Variants of one base should share a denominator, but a report that leaves
// one variant blank shifts that variant's run total. The group keeps the
// largest total; this is a known approximation.
func CalcEventItemExpected(eventItems []ItemStats) []EventItemExpected {
	groups := newGroupMap[EventItemExpected]()
	for _, s := range eventItems {
		if s.TotalRuns == 0 {
			continue
		}
		class := Classify(s.ItemName)
		slotsPerRun := float64(s.TotalDrops) / float64(s.TotalRuns)

		groups.merge(class.Base, func() EventItemExpected {
			return EventItemExpected{BaseName: class.Base}
		}, func(e *EventItemExpected) {
			e.Slots += slotsPerRun
			e.Base += slotsPerRun * float64(class.Modifier)
			e.TotalSlots += s.TotalDrops
			e.TotalRuns = max(e.TotalRuns, s.TotalRuns)
		})
	}

	result := groups.values()
	sort.Slice(result, func(i, j int) bool { return result[i].BaseName < result[j].BaseName })
	return result
}
