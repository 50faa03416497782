package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"drops-mcp/internal/stats"

	"github.com/rs/zerolog/log"
)

// DirSource reads documents from a local directory laid out like the
// published bucket.
type DirSource struct {
	root string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir}
}

func (s *DirSource) read(rel string) ([]byte, error) {
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (s *DirSource) Events(ctx context.Context) ([]stats.Event, error) {
	data, err := s.read(EventsFile)
	if err != nil {
		return nil, err
	}
	return decodeEvents(data)
}

func (s *DirSource) Exclusions(ctx context.Context) (stats.ExclusionsMap, error) {
	data, err := s.read(ExclusionsFile)
	if errors.Is(err, ErrNotFound) {
		log.Debug().Str("root", s.root).Msg("No exclusions document, assuming none")
		return stats.ExclusionsMap{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeExclusions(data)
}

func (s *DirSource) QuestData(ctx context.Context, eventID, questID string) (*stats.QuestData, error) {
	rel, err := questPath(eventID, questID)
	if err != nil {
		return nil, err
	}
	data, err := s.read(rel)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeQuestData(data)
}
