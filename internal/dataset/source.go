package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"drops-mcp/internal/stats"
)

// ErrNotFound is returned when a requested event or document does not exist.
var ErrNotFound = errors.New("not found")

// Document paths relative to the data root.
const (
	EventsFile     = "events.json"
	ExclusionsFile = "exclusions.json"
)

// Source provides the documents produced by the ingestion pipeline.
type Source interface {
	// Events returns every configured event.
	Events(ctx context.Context) ([]stats.Event, error)
	// Exclusions returns the exclusion lists keyed by quest id. A missing
	// document yields an empty map.
	Exclusions(ctx context.Context) (stats.ExclusionsMap, error)
	// QuestData returns the reports of one quest, or nil when the quest has
	// no data yet.
	QuestData(ctx context.Context, eventID, questID string) (*stats.QuestData, error)
}

// Config selects and tunes the data source.
type Config struct {
	// BaseURL wins over Dir when set.
	BaseURL         string
	Dir             string
	RequestInterval time.Duration
	Concurrency     int
	// CacheTTL enables an in-memory document cache when positive.
	CacheTTL time.Duration
}

// NewSource returns an HTTP source when a base URL is configured, otherwise a
// directory source. A positive CacheTTL wraps it in a CachedSource.
func NewSource(cfg Config) Source {
	var src Source
	if cfg.BaseURL != "" {
		src = NewHTTPSource(cfg.BaseURL, cfg.RequestInterval)
	} else {
		src = NewDirSource(cfg.Dir)
	}
	if cfg.CacheTTL > 0 {
		return NewCachedSource(src, cfg.CacheTTL)
	}
	return src
}

func questPath(eventID, questID string) (string, error) {
	for _, id := range []string{eventID, questID} {
		if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
			return "", fmt.Errorf("invalid id %q", id)
		}
	}
	return eventID + "/" + questID + ".json", nil
}
