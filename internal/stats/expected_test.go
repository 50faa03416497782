package stats

import "testing"

func TestCalcEventItemExpected(t *testing.T) {
	items := []ItemStats{
		{ItemName: "ぐん肥(x1)", TotalDrops: 200, TotalRuns: 100},
		{ItemName: "ぐん肥(x3)", TotalDrops: 100, TotalRuns: 100},
	}
	got := CalcEventItemExpected(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 group, got %d", len(got))
	}
	g := got[0]
	if g.BaseName != "ぐん肥" {
		t.Errorf("baseName = %q", g.BaseName)
	}
	if !approx(g.Slots, 3.0, eps) || !approx(g.Base, 5.0, eps) {
		t.Errorf("slots/base = %v/%v, want 3/5", g.Slots, g.Base)
	}
	if g.TotalSlots != 300 || g.TotalRuns != 100 {
		t.Errorf("totalSlots/totalRuns = %d/%d, want 300/100", g.TotalSlots, g.TotalRuns)
	}
	if !approx(g.Project(2), 11.0, eps) {
		t.Errorf("Project(2) = %v, want 11", g.Project(2))
	}
	curve := g.Curve()
	if len(curve) != MaxEventBonus+1 || !approx(curve[0], 5, eps) || !approx(curve[12], 41, eps) {
		t.Errorf("Curve() = %v", curve)
	}
}

func TestCalcEventItemExpected_RunSkew(t *testing.T) {
	items := []ItemStats{
		{ItemName: "ミトン(x1)", TotalDrops: 90, TotalRuns: 90},
		{ItemName: "ミトン(x3)", TotalDrops: 50, TotalRuns: 100},
		{ItemName: "ランプ(x2)", TotalDrops: 10, TotalRuns: 0},
		{ItemName: "ぬいぐるみ(x2)", TotalDrops: 20, TotalRuns: 40},
	}
	got := CalcEventItemExpected(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups (zero-run variant skipped), got %+v", got)
	}
	if got[0].BaseName != "ぬいぐるみ" || got[1].BaseName != "ミトン" {
		t.Errorf("groups not sorted by base name: %+v", got)
	}
	if got[1].TotalRuns != 100 {
		t.Errorf("totalRuns = %d, want max 100", got[1].TotalRuns)
	}
	if !approx(got[1].Slots, 1.5, eps) || !approx(got[1].Base, 2.5, eps) {
		t.Errorf("slots/base = %v/%v, want 1.5/2.5", got[1].Slots, got[1].Base)
	}
}
