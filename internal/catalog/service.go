package catalog

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/event-timekeeper/backend/internal/storage/models"
)

// Service caches the parsed catalog and answers selection queries. Reload
// replaces the cache atomically; readers always see a consistent snapshot.
type Service struct {
	source Source

	mu       sync.RWMutex
	records  []models.EventRecord
	loadedAt time.Time
}

// NewService creates a catalog service over the given source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Reload fetches and parses the catalog, replacing the cached records.
// Returns the number of rows loaded. On failure the previous cache is kept.
func (s *Service) Reload(ctx context.Context) (int, error) {
	body, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	records, err := Parse(bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("Catalog loaded: %d rows from %s", len(records), s.source.Ref())
	return len(records), nil
}

// Records returns a copy of the cached catalog rows.
func (s *Service) Records() []models.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EventRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Find returns the cached record with the given ID, or nil.
func (s *Service) Find(id string) *models.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			rec := s.records[i]
			return &rec
		}
	}
	return nil
}

// LoadedAt returns when the cache was last replaced, zero if never.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Candidate returns today's event or the nearest future one, loading the
// catalog first if it has never been loaded. A fetch failure is returned as
// an error so the caller can log and treat the load as yielding no
// candidate.
func (s *Service) Candidate(ctx context.Context, today time.Time) (*models.EventRecord, error) {
	s.mu.RLock()
	loaded := !s.loadedAt.IsZero()
	s.mu.RUnlock()

	if !loaded {
		if _, err := s.Reload(ctx); err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
	}

	return SelectCandidate(s.Records(), today), nil
}
