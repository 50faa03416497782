package stats

import (
	"math"
	"testing"
)

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
	excl := []Exclusion{{ReportID: "r1", Reason: "x"}}
	if got := Aggregate([]Report{}, excl); len(got) != 0 {
		t.Errorf("Aggregate([]) = %v, want empty", got)
	}
}

func TestAggregate_SingleReport(t *testing.T) {
	reports := []Report{makeReport("r1", 100, map[string]DropCount{"鉄杭": Count(80), "骨": Count(30)})}
	stats := Aggregate(reports, nil)

	if len(stats) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stats))
	}
	iron, _ := findStats(stats, "鉄杭")
	if iron.TotalDrops != 80 || iron.TotalRuns != 100 {
		t.Errorf("鉄杭 totals = %d/%d, want 80/100", iron.TotalDrops, iron.TotalRuns)
	}
	if !approx(iron.DropRate, 0.8, eps) {
		t.Errorf("鉄杭 dropRate = %v, want 0.8", iron.DropRate)
	}
	if iron.CILower >= 0.8 || iron.CIUpper <= 0.8 {
		t.Errorf("interval [%v, %v] does not contain the rate", iron.CILower, iron.CIUpper)
	}
}

func TestAggregate_SortedByName(t *testing.T) {
	reports := []Report{
		makeReport("r1", 10, map[string]DropCount{"c": Count(1), "a": Count(1)}),
		makeReport("r2", 10, map[string]DropCount{"b": Count(1)}),
	}
	stats := Aggregate(reports, nil)
	want := []string{"a", "b", "c"}
	for i, s := range stats {
		if s.ItemName != want[i] {
			t.Errorf("stats[%d] = %s, want %s", i, s.ItemName, want[i])
		}
	}
}

func TestAggregate_Exclusions(t *testing.T) {
	reports := []Report{
		makeReport("r1", 100, map[string]DropCount{"鉄杭": Count(80)}),
		makeReport("r2", 200, map[string]DropCount{"鉄杭": Count(150)}),
		makeReport("r3", 50, map[string]DropCount{"鉄杭": Count(45)}),
	}
	exclusions := []Exclusion{
		{ReportID: "r2", Reason: "suspicious"},
		{ReportID: "r2", Reason: "duplicate entry"},
	}
	iron, ok := findStats(Aggregate(reports, exclusions), "鉄杭")
	if !ok {
		t.Fatal("鉄杭 missing")
	}
	if iron.TotalDrops != 125 || iron.TotalRuns != 150 {
		t.Errorf("totals = %d/%d, want 125/150", iron.TotalDrops, iron.TotalRuns)
	}
}

func TestAggregate_AbsentDoesNotInflateRuns(t *testing.T) {
	reports := []Report{
		makeReport("r1", 100, map[string]DropCount{"鉄杭": Count(80), "骨": Absent()}),
		makeReport("r2", 50, map[string]DropCount{"鉄杭": Count(40), "骨": Count(10)}),
	}
	stats := Aggregate(reports, nil)

	bone, _ := findStats(stats, "骨")
	if bone.TotalDrops != 10 || bone.TotalRuns != 50 {
		t.Errorf("骨 totals = %d/%d, want 10/50", bone.TotalDrops, bone.TotalRuns)
	}
	iron, _ := findStats(stats, "鉄杭")
	if iron.TotalRuns != 150 {
		t.Errorf("鉄杭 totalRuns = %d, want 150", iron.TotalRuns)
	}
}

func TestAggregate_OnlyAbsentValues(t *testing.T) {
	reports := []Report{makeReport("r1", 100, map[string]DropCount{"骨": Absent()})}
	bone, ok := findStats(Aggregate(reports, nil), "骨")
	if !ok {
		t.Fatal("an item present only as a key must still be listed")
	}
	if bone.TotalRuns != 0 || bone.DropRate != 0 || bone.CILower != 0 || bone.CIUpper != 0 {
		t.Errorf("expected all-zero stats, got %+v", bone)
	}
}

func TestAggregate_ZeroIsNotAbsent(t *testing.T) {
	reports := []Report{makeReport("r1", 100, map[string]DropCount{"骨": Count(0)})}
	bone, _ := findStats(Aggregate(reports, nil), "骨")
	if bone.TotalRuns != 100 {
		t.Errorf("totalRuns = %d, want 100", bone.TotalRuns)
	}
	if bone.CILower != 0 || bone.CIUpper >= 0.05 {
		t.Errorf("interval = [%v, %v], want [0, <0.05)", bone.CILower, bone.CIUpper)
	}
}

func TestAggregate_DisjointSetsMerge(t *testing.T) {
	a := []Report{
		makeReport("a1", 100, map[string]DropCount{"鉄杭": Count(80), "骨": Count(5)}),
		makeReport("a2", 30, map[string]DropCount{"鉄杭": Count(20)}),
	}
	b := []Report{
		makeReport("b1", 70, map[string]DropCount{"鉄杭": Count(50), "剣秘": Count(3)}),
	}

	merged := MergeItemStats(Aggregate(a, nil), Aggregate(b, nil))
	whole := Aggregate(append(append([]Report{}, a...), b...), nil)

	if len(merged) != len(whole) {
		t.Fatalf("merged %d items, whole %d", len(merged), len(whole))
	}
	for i := range whole {
		m, w := merged[i], whole[i]
		if m.ItemName != w.ItemName || m.TotalDrops != w.TotalDrops || m.TotalRuns != w.TotalRuns {
			t.Errorf("item %d: merged %+v, whole %+v", i, m, w)
		}
		if !approx(m.CILower, w.CILower, eps) || !approx(m.CIUpper, w.CIUpper, eps) {
			t.Errorf("item %s: interval mismatch", w.ItemName)
		}
	}
}

func TestWilsonInterval(t *testing.T) {
	tests := []struct {
		name         string
		successes, n int
		loMin, loMax float64
		hiMin, hiMax float64
	}{
		{"Half", 500, 1000, 0.46, 0.50, 0.50, 0.54},
		{"NoSuccess", 0, 100, 0, 0, 0, 0.05},
		{"AllSuccess", 100, 100, 0.95, 1, 0.999, 1},
		{"ZeroTrials", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := WilsonInterval(tt.successes, tt.n)
			if lo < tt.loMin || lo > tt.loMax {
				t.Errorf("lower = %v, want in [%v, %v]", lo, tt.loMin, tt.loMax)
			}
			if hi < tt.hiMin || hi > tt.hiMax {
				t.Errorf("upper = %v, want in [%v, %v]", hi, tt.hiMin, tt.hiMax)
			}
		})
	}
}

func TestWilsonInterval_MoreDropsThanRuns(t *testing.T) {
	lo, hi := WilsonInterval(250, 100)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		t.Fatalf("interval must stay finite, got [%v, %v]", lo, hi)
	}
	if lo < 0 || hi > 1 || lo > hi {
		t.Errorf("interval [%v, %v] out of [0, 1]", lo, hi)
	}
}
