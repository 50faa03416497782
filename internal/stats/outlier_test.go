package stats

import (
	"math"
	"testing"
)

func TestCalcOutlierStats(t *testing.T) {
	reports := []Report{
		makeReport("r1", 100, map[string]DropCount{"鉄杭": Count(80)}),
		makeReport("r2", 100, map[string]DropCount{"鉄杭": Count(60)}),
		makeReport("r3", 100, map[string]DropCount{"鉄杭": Count(70)}),
	}
	result := CalcOutlierStats(reports, nil)
	if len(result) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result))
	}
	iron := result[0]
	if !approx(iron.Mean, 0.7, eps) {
		t.Errorf("mean = %v, want 0.7", iron.Mean)
	}
	if iron.SampleCount != 3 {
		t.Errorf("sampleCount = %d, want 3", iron.SampleCount)
	}
	// population stddev of [0.8, 0.6, 0.7]
	if want := math.Sqrt(2.0 / 300); !approx(iron.StdDev, want, eps) {
		t.Errorf("stdDev = %v, want %v", iron.StdDev, want)
	}
}

func TestCalcOutlierStats_Exclusions(t *testing.T) {
	reports := []Report{
		makeReport("r1", 100, map[string]DropCount{"鉄杭": Count(80)}),
		makeReport("r2", 100, map[string]DropCount{"鉄杭": Count(60)}),
	}
	result := CalcOutlierStats(reports, []Exclusion{{ReportID: "r1"}})
	if result[0].SampleCount != 1 {
		t.Errorf("sampleCount = %d, want 1", result[0].SampleCount)
	}
	if !approx(result[0].Mean, 0.6, eps) || result[0].StdDev != 0 {
		t.Errorf("got mean %v stdDev %v, want 0.6 and 0", result[0].Mean, result[0].StdDev)
	}
}

func TestCalcOutlierStats_NoSamples(t *testing.T) {
	reports := []Report{makeReport("r1", 100, map[string]DropCount{"鉄杭": Absent()})}
	result := CalcOutlierStats(reports, nil)
	if len(result) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result))
	}
	if result[0] != (ItemOutlierStats{ItemName: "鉄杭"}) {
		t.Errorf("got %+v, want all-zero stats", result[0])
	}
}

func TestIsOutlier_Gates(t *testing.T) {
	base := ItemOutlierStats{ItemName: "鉄杭", Mean: 0.7, StdDev: 0.1, SampleCount: 10}

	tests := []struct {
		name     string
		value    DropCount
		runCount int
		pop      ItemOutlierStats
		rate     float64
	}{
		{"AbsentValue", Absent(), 100, base, 0.7},
		{"FewRuns", Count(15), 19, base, 0.7},
		{"FewSamples", Count(100), 100, ItemOutlierStats{ItemName: "鉄杭", Mean: 0.7, StdDev: 0.1, SampleCount: 4}, 0.7},
		{"ZeroStdDev", Count(100), 100, ItemOutlierStats{ItemName: "鉄杭", Mean: 0.7, SampleCount: 10}, 0.7},
		{"LowRateNormal", Count(100), 100, base, 0.1},
		{"BelowThreshold", Count(75), 100, base, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if z, ok := IsOutlier(tt.value, tt.runCount, tt.pop, tt.rate); ok {
				t.Errorf("IsOutlier() = %v, want no verdict", z)
			}
		})
	}
}

func TestIsOutlier_Verdict(t *testing.T) {
	base := ItemOutlierStats{ItemName: "鉄杭", Mean: 0.7, StdDev: 0.1, SampleCount: 10}

	// (0.2 - 0.7) / 0.1 = -5
	z, ok := IsOutlier(Count(20), 100, base, 0.7)
	if !ok || !approx(z, -5, 1e-6) {
		t.Errorf("IsOutlier() = %v, %v; want -5, true", z, ok)
	}
}

func TestIsOutlier_BonusItemsBypassRateGate(t *testing.T) {
	for _, name := range []string{"ぐん肥(x3)", "ポイント(+600)", "QP(+150000)"} {
		t.Run(name, func(t *testing.T) {
			pop := ItemOutlierStats{ItemName: name, Mean: 0.5, StdDev: 0.1, SampleCount: 10}
			z, ok := IsOutlier(Count(100), 100, pop, 0.05)
			if !ok || !approx(z, 5.0, 1e-6) {
				t.Errorf("IsOutlier() = %v, %v; want 5.0, true", z, ok)
			}
		})
	}
}

func TestDetectOutliers(t *testing.T) {
	var reports []Report
	for i, v := range []int{50, 52, 48, 51, 49, 50, 50, 52, 48, 50} {
		reports = append(reports, makeReport(string(rune('a'+i)), 100, map[string]DropCount{"鉄杭": Count(v)}))
	}
	reports = append(reports, makeReport("z", 100, map[string]DropCount{"鉄杭": Count(95)}))

	flags := DetectOutliers(reports, nil)
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d: %+v", len(flags), flags)
	}
	if flags[0].ReportID != "z" || flags[0].ItemName != "鉄杭" || flags[0].ZScore <= OutlierZThreshold {
		t.Errorf("unexpected flag %+v", flags[0])
	}

	// Excluding the anomalous report removes both its flag and its weight.
	if flags := DetectOutliers(reports, []Exclusion{{ReportID: "z"}}); len(flags) != 0 {
		t.Errorf("expected no flags after exclusion, got %+v", flags)
	}
}
