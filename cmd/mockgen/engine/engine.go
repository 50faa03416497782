package engine

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"drops-mcp/internal/dataset"
	"drops-mcp/internal/stats"

	"github.com/goccy/go-json"
)

// Scenarios understood by Generate.
const (
	ScenarioClean  = "clean"
	ScenarioNoisy  = "noisy"
	ScenarioSparse = "sparse"
)

type GeneratorConfig struct {
	Scenario string
	EventID  string
	Quests   int
	Reports  int // per quest
	Seed     int64
	Now      time.Time
}

// Dataset is one generated event in the published document layout.
type Dataset struct {
	Events     []stats.Event
	Exclusions stats.ExclusionsMap
	Quests     map[string]stats.QuestData // keyed by quest id
}

type mockItem struct {
	name string
	rate float64 // expected count per run
}

var mockItems = []mockItem{
	{"鉄杭", 0.30},
	{"骨", 0.25},
	{"剣秘", 0.05},
	{"ミトン(x3)", 0.50},
	{"ミトン(x1)", 1.00},
	{"ポイント(+600)", 0.80},
	{"QP(+2000000)", 0.10},
}

func Generate(cfg GeneratorConfig) Dataset {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.EventID == "" {
		cfg.EventID = "mock-event"
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	event := stats.Event{
		EventID: cfg.EventID,
		Name:    "Mock Event",
		Period: stats.EventPeriod{
			Start: cfg.Now.AddDate(0, 0, -7).UTC().Format(time.RFC3339),
			End:   cfg.Now.AddDate(0, 0, 7).UTC().Format(time.RFC3339),
		},
		EventItems: []string{"ミトン"},
	}

	ds := Dataset{
		Exclusions: stats.ExclusionsMap{},
		Quests:     make(map[string]stats.QuestData),
	}

	for q := 0; q < cfg.Quests; q++ {
		level := fmt.Sprintf("%d", 80+q*5)
		if q == cfg.Quests-1 {
			level += "+"
		}
		quest := stats.Quest{
			QuestID: fmt.Sprintf("q%d", q+1),
			Name:    fmt.Sprintf("Mock Quest %d", q+1),
			Level:   level,
			AP:      30 + q*5,
		}
		event.Quests = append(event.Quests, quest)

		var reports []stats.Report
		for r := 0; r < cfg.Reports; r++ {
			runs := 20 + rng.Intn(200)
			report := stats.Report{
				ID:        fmt.Sprintf("%s-%s-%04d", cfg.EventID, quest.QuestID, r+1),
				Reporter:  fmt.Sprintf("user%02d", rng.Intn(12)),
				RunCount:  runs,
				Timestamp: cfg.Now.Add(-time.Duration(cfg.Reports-r) * time.Hour).UTC().Format(time.RFC3339),
				Items:     make(map[string]stats.DropCount, len(mockItems)),
			}
			if r%3 == 0 {
				report.ReporterName = "Player " + report.Reporter[len(report.Reporter)-2:]
			}

			for _, item := range mockItems {
				if cfg.Scenario == ScenarioSparse && rng.Float64() < 0.3 {
					report.Items[item.name] = stats.Absent()
					continue
				}
				report.Items[item.name] = stats.Count(sampleCount(rng, runs, item.rate))
			}

			// Inflated counts on a tenth of the reports; the first one per quest is excluded.
			if cfg.Scenario == ScenarioNoisy && r%10 == 9 {
				n, _ := report.Items["鉄杭"].Get()
				report.Items["鉄杭"] = stats.Count(n*4 + runs)
				report.Note = "double checked https://example.com/" + report.ID
				if len(ds.Exclusions[quest.QuestID]) == 0 {
					ds.Exclusions[quest.QuestID] = []stats.Exclusion{{ReportID: report.ID, Reason: "inflated count"}}
				}
			}
			reports = append(reports, report)
		}

		ds.Quests[quest.QuestID] = stats.QuestData{
			Quest:       quest,
			LastUpdated: cfg.Now.UTC().Format(time.RFC3339),
			Reports:     reports,
		}
	}

	ds.Events = []stats.Event{event}
	return ds
}

// sampleCount draws the total drops of runs independent runs, each yielding
// floor(rate) items plus one more with probability frac(rate).
func sampleCount(rng *rand.Rand, runs int, rate float64) int {
	whole := int(rate)
	frac := rate - float64(whole)
	total := whole * runs
	for i := 0; i < runs; i++ {
		if rng.Float64() < frac {
			total++
		}
	}
	return total
}

func Save(outDir string, ds Dataset) error {
	if err := writeJSON(filepath.Join(outDir, dataset.EventsFile), map[string]any{"events": ds.Events}); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, dataset.ExclusionsFile), ds.Exclusions); err != nil {
		return err
	}
	for _, event := range ds.Events {
		for _, quest := range event.Quests {
			qd, ok := ds.Quests[quest.QuestID]
			if !ok {
				continue
			}
			path := filepath.Join(outDir, event.EventID, quest.QuestID+".json")
			if err := writeJSON(path, qd); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}
