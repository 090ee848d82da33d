// Package store holds the portal's catalog and ledgers in memory and writes
// them through to a Persister as one JSON document after every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/examcloud/internal/catalog"
	"github.com/pavelanni/examcloud/internal/model"
)

// StorageKey is the key the state document is persisted under.
const StorageKey = "examcloud_mock_db"

const saveTimeout = 5 * time.Second

// ErrNotFound is returned when an operation needs an exam or question that
// does not exist. Lookups that may miss return nil instead.
var ErrNotFound = errors.New("not found")

// Persister stores the state document.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Document is the unit of durable state. Schools are not part of it; they
// always come from the seed catalog.
type Document struct {
	Exams         []*model.Exam              `json:"exams"`
	Results       []model.ExamResult         `json:"results"`
	Students      []*model.StudentUser       `json:"students"`
	Announcements []model.Announcement       `json:"announcements"`
	CustomExams   []model.CustomExamSnapshot `json:"customExams"`
	Assignments   []model.ExamAssignment     `json:"assignments"`
}

// Store is the portal's state. Every exported method holds the store lock for
// its whole duration, so each operation is atomic on its own. Read methods
// copy the top-level slice but share exam and student pointers with the store.
type Store struct {
	mu sync.Mutex

	schools       []model.School
	exams         []*model.Exam
	students      []*model.StudentUser
	announcements []model.Announcement
	assignments   []model.ExamAssignment
	customExams   []model.CustomExamSnapshot
	results       []model.ExamResult

	examIndex     map[string]*model.Exam
	questionIndex map[string]string // question id -> exam id

	rng       *rand.Rand
	now       func() time.Time
	persister Persister
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the randomness source used to shuffle filtered questions.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithSeed is WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithClock sets the clock used for timestamps and generated ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPersister makes the store write its state through p.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// New creates a store holding the seed catalog. The seed is owned by the
// store afterwards.
func New(seed *catalog.Seed, opts ...Option) *Store {
	s := &Store{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applySeed(seed)
	return s
}

func (s *Store) applySeed(seed *catalog.Seed) {
	s.schools = seed.Schools
	s.exams = seed.Exams
	s.students = seed.Students
	s.announcements = seed.Announcements
	s.results = seed.Results
	s.assignments = nil
	s.customExams = nil
	s.reindexLocked()
}

// Load replaces each collection present in the persisted document. A missing
// or unreadable document leaves the seed in place.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	data, err := s.persister.Load(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if data == nil {
		slog.Info("no stored state, using seed catalog")
		return nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("stored state is unreadable, using seed catalog", "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Exams != nil {
		s.exams = doc.Exams
	}
	if doc.Results != nil {
		s.results = doc.Results
	}
	if doc.Students != nil {
		s.students = doc.Students
	}
	if doc.Announcements != nil {
		s.announcements = doc.Announcements
	}
	if doc.CustomExams != nil {
		s.customExams = doc.CustomExams
	}
	if doc.Assignments != nil {
		s.assignments = doc.Assignments
	}
	s.reindexLocked()

	slog.Info("loaded stored state",
		"exams", len(s.exams),
		"results", len(s.results),
		"students", len(s.students),
		"custom_exams", len(s.customExams),
		"assignments", len(s.assignments),
	)
	return nil
}

// Reset drops the persisted document and starts over from seed.
func (s *Store) Reset(ctx context.Context, seed *catalog.Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Delete(ctx, StorageKey); err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
	}
	s.applySeed(seed)
	return nil
}

// Document returns the state as it would be persisted.
func (s *Store) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentLocked()
}

func (s *Store) documentLocked() Document {
	return Document{
		Exams:         nonNil(s.exams),
		Results:       nonNil(s.results),
		Students:      nonNil(s.students),
		Announcements: nonNil(s.announcements),
		CustomExams:   nonNil(s.customExams),
		Assignments:   nonNil(s.assignments),
	}
}

// persistLocked writes the whole state. Failures are logged; the in-memory
// change stands either way.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	data, err := json.Marshal(s.documentLocked())
	if err != nil {
		slog.Error("encode state", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, StorageKey, data); err != nil {
		slog.Error("persist state", "error", err)
	}
}

// nextID returns prefix, the current time in milliseconds and a short random
// suffix, e.g. "assign1735689600000_3f9a1c".
func (s *Store) nextID(prefix string) string {
	return fmt.Sprintf("%s%d_%s", prefix, s.now().UnixMilli(), uuid.NewString()[:6])
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func cloneSlice[T any](v []T) []T {
	return nonNil(slices.Clone(v))
}
