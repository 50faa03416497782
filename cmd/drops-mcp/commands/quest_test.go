package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"drops-mcp/cmd/mockgen/engine"
	"drops-mcp/internal/dataset"
)

func generatedSource(t *testing.T) (dataset.Source, string) {
	t.Helper()
	dir := t.TempDir()
	ds := engine.Generate(engine.GeneratorConfig{
		Scenario: engine.ScenarioNoisy,
		Quests:   2,
		Reports:  20,
		Seed:     11,
		Now:      time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
	})
	if err := engine.Save(dir, ds); err != nil {
		t.Fatal(err)
	}
	return dataset.NewDirSource(dir), dir
}

func TestRenderQuest(t *testing.T) {
	src, dir := generatedSource(t)
	ctx := context.Background()

	out, err := renderQuest(ctx, src, nil, "mock-event", "q1", formatJSON, false)
	if err != nil {
		t.Fatalf("renderQuest(json) error = %v", err)
	}
	if !strings.Contains(out, `"validCount": 19`) || !strings.Contains(out, `"excludedCount": 1`) {
		t.Errorf("json output missing counts:\n%s", out)
	}

	out, err = renderQuest(ctx, src, nil, "mock-event", "q1", formatMarkdown, true)
	if err != nil {
		t.Fatalf("renderQuest(markdown) error = %v", err)
	}
	if !strings.HasPrefix(out, "# Mock Quest 1\n") || !strings.Contains(out, "Mock Event / Lv 80") {
		t.Errorf("markdown header unexpected:\n%s", out)
	}

	if _, err := renderQuest(ctx, src, nil, "mock-event", "q1", "yaml", false); err == nil {
		t.Error("renderQuest(yaml) error = nil, want error")
	}

	if err := os.Remove(filepath.Join(dir, "mock-event", "q2.json")); err != nil {
		t.Fatal(err)
	}
	_, err = renderQuest(ctx, src, nil, "mock-event", "q2", formatJSON, false)
	if err == nil || !strings.Contains(err.Error(), "no data") {
		t.Errorf("renderQuest(missing) error = %v, want no data", err)
	}
}

func TestReportPath(t *testing.T) {
	got := reportPath("/tmp/reports", "ev1", "q9")
	if want := filepath.Join("/tmp/reports", "ev1-q9.md"); got != want {
		t.Errorf("reportPath() = %q, want %q", got, want)
	}
}
