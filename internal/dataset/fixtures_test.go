package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const eventsJSON = `{
  "events": [
    {
      "eventId": "ev1",
      "name": "Summer",
      "period": {"start": "2026-08-01T00:00:00Z", "end": "2026-08-15T00:00:00Z"},
      "quests": [
        {"questId": "q90p", "name": "Expert", "level": "90+", "ap": 40},
        {"questId": "q80", "name": "Advanced", "level": "80", "ap": 30},
        {"questId": "q90", "name": "Hard", "level": "90", "ap": 40}
      ],
      "eventItems": ["ミトン"]
    }
  ]
}`

const exclusionsJSON = `{"q80": [{"reportId": "r2", "reason": "duplicate"}]}`

const q80JSON = `{
  "quest": {"questId": "q80", "name": "Advanced", "level": "80", "ap": 30},
  "lastUpdated": "2026-08-02T00:00:00Z",
  "reports": [
    {"id": "r1", "reporter": "u1", "reporterName": "User 1", "runcount": 10, "timestamp": "2026-08-01T10:00:00Z", "note": "", "items": {"鉄杭": 3, "骨": null}},
    {"id": "r2", "reporter": "u2", "reporterName": "", "runcount": 5, "timestamp": "2026-08-01T11:00:00Z", "note": "", "items": {"鉄杭": 1}},
    {"id": "", "reporter": "u3", "reporterName": "", "runcount": 5, "timestamp": "2026-08-01T12:00:00Z", "note": "", "items": {}}
  ]
}`

const q90pJSON = `{
  "quest": {"questId": "q90p", "name": "Expert", "level": "90+", "ap": 40},
  "lastUpdated": "2026-08-03T00:00:00Z",
  "reports": [
    {"id": "r9", "reporter": "u1", "reporterName": "User 1", "runcount": 20, "timestamp": "2026-08-03T10:00:00Z", "note": "", "items": {"ミトン(x3)": 12}}
  ]
}`

// writeFixture lays out a data directory with events, exclusions and two of
// the three quests.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		EventsFile:      eventsJSON,
		ExclusionsFile:  exclusionsJSON,
		"ev1/q80.json":  q80JSON,
		"ev1/q90p.json": q90pJSON,
	}
	for rel, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
