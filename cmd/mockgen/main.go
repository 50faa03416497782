package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"drops-mcp/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", engine.ScenarioClean, "Scenario to generate: clean, noisy, sparse")
	outDir := flag.String("out", "./data", "Output directory for the generated documents")
	eventID := flag.String("event", "mock-event", "Event id")
	quests := flag.Int("quests", 3, "Number of quests")
	reports := flag.Int("reports", 40, "Number of reports per quest")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		EventID:  *eventID,
		Quests:   *quests,
		Reports:  *reports,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (%d quests x %d reports, seed %d) to %s...\n",
		cfg.Scenario, cfg.Quests, cfg.Reports, cfg.Seed, *outDir)

	ds := engine.Generate(cfg)
	if err := engine.Save(*outDir, ds); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
