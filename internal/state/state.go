package state

import (
	"sort"
	"sync"
	"time"

	"go-gig-router/internal/models"

	mapset "github.com/deckarep/golang-set/v2"
)

// cached postings older than this are dropped; "Show More" on them answers
// "not available"
const postingTTL = 7 * 24 * time.Hour

type cachedPosting struct {
	posting  models.Posting
	storedAt time.Time
}

// Store is the in-memory run state of the bot. Nothing here survives a
// restart. All methods are safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	now       func() time.Time
	postings  map[string]cachedPosting
	filtered  mapset.Set[string]
	lastTitle string
	firstRun  bool
	startedAt time.Time
	lastCheck time.Time
	stats     Stats
}

type Stats struct {
	Cycles     int `json:"cycles"`
	Fetched    int `json:"fetched"`
	Rejected   int `json:"rejected"`
	Dispatched int `json:"dispatched"`
	Failed     int `json:"failed"`
}

// Snapshot is a point-in-time copy for status reporting.
type Snapshot struct {
	StartedAt     time.Time `json:"started_at"`
	Uptime        string    `json:"uptime"`
	LastCheck     time.Time `json:"last_check,omitempty"`
	LastJobTitle  string    `json:"last_job_title,omitempty"`
	FirstRun      bool      `json:"first_run"`
	CachedJobs    int       `json:"cached_jobs"`
	FilteredCount int       `json:"filtered_count"`
	Stats         Stats     `json:"stats"`
}

func New() *Store {
	return newStore(time.Now)
}

func newStore(now func() time.Time) *Store {
	return &Store{
		now:       now,
		postings:  make(map[string]cachedPosting),
		filtered:  mapset.NewSet[string](),
		firstRun:  true,
		startedAt: now(),
	}
}

// Watermark returns the newest title seen by the last productive cycle and
// whether the next cycle is a first (bounded) run.
func (s *Store) Watermark() (lastTitle string, firstRun bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTitle, s.firstRun
}

// CompleteCycle moves the watermark to newestTitle when the cycle fetched
// anything, and ends the first run either way.
func (s *Store) CompleteCycle(newestTitle string, fetched int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fetched > 0 && newestTitle != "" {
		s.lastTitle = newestTitle
	}
	s.firstRun = false
	s.lastCheck = s.now()
	s.stats.Cycles++
	s.stats.Fetched += fetched
}

// ForceFullCheck makes the next cycle ignore the watermark.
func (s *Store) ForceFullCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstRun = true
}

// Remember caches a posting for later "Show More" lookups.
func (s *Store) Remember(p models.Posting) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.postings[p.ID] = cachedPosting{posting: p, storedAt: now}

	cutoff := now.Add(-postingTTL)
	for id, c := range s.postings {
		if c.storedAt.Before(cutoff) {
			delete(s.postings, id)
		}
	}
}

func (s *Store) Posting(id string) (models.Posting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.postings[id]
	return c.posting, ok
}

// AddFiltered marks a job id as never to be dispatched. It returns false
// when the id was already filtered.
func (s *Store) AddFiltered(id string) bool {
	return s.filtered.Add(id)
}

func (s *Store) IsFiltered(id string) bool {
	return s.filtered.Contains(id)
}

// Filtered returns the filtered job ids in sorted order.
func (s *Store) Filtered() []string {
	ids := s.filtered.ToSlice()
	sort.Strings(ids)
	return ids
}

func (s *Store) RecordRejected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Rejected++
}

func (s *Store) RecordDispatched() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Dispatched++
}

func (s *Store) RecordFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Failed++
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		StartedAt:     s.startedAt,
		Uptime:        s.now().Sub(s.startedAt).Truncate(time.Second).String(),
		LastCheck:     s.lastCheck,
		LastJobTitle:  s.lastTitle,
		FirstRun:      s.firstRun,
		CachedJobs:    len(s.postings),
		FilteredCount: s.filtered.Cardinality(),
		Stats:         s.stats,
	}
}
