package stats

import "math"

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func makeReport(id string, runCount int, items map[string]DropCount) Report {
	return Report{
		ID:           id,
		Reporter:     "user1",
		ReporterName: "User 1",
		RunCount:     runCount,
		Timestamp:    "2026-01-01T00:00:00Z",
		Items:        items,
	}
}

func findStats(stats []ItemStats, name string) (ItemStats, bool) {
	for _, s := range stats {
		if s.ItemName == name {
			return s, true
		}
	}
	return ItemStats{}, false
}

func testTable() *ItemTable {
	return NewItemTable([]ItemPriority{
		{ID: 6503, ShortName: "鉄杭", DropPriority: 8300},
		{ID: 6512, ShortName: "骨", DropPriority: 8300},
		{ID: 7002, ShortName: "剣秘", DropPriority: 9000},
		{ID: 6001, ShortName: "種", DropPriority: 8000},
	})
}
