package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vanshika/phonebook/backend/internal/directory"
	"github.com/vanshika/phonebook/backend/internal/domain"
	"github.com/vanshika/phonebook/backend/internal/metrics"
	"github.com/vanshika/phonebook/backend/internal/source"
)

// Store is the directory contract the service resolves against.
type Store interface {
	Count() int
	All() []domain.Person
	FindByName(name string) (domain.Person, bool)
	Insert(candidate domain.Person) (domain.Person, error)
	UpdatePhone(name string, phone *string) (domain.Person, bool)
}

// DirectoryService answers the directory queries and mutations.
type DirectoryService struct {
	store      Store
	source     source.PersonSource
	sourceKind source.Kind
	metrics    *metrics.Metrics
	logger     *slog.Logger
	nowFn      func() time.Time
}

// Option configures a DirectoryService.
type Option func(*DirectoryService)

// WithSource makes AllPersons read from src instead of the store. A nil src
// keeps the store.
func WithSource(kind source.Kind, src source.PersonSource) Option {
	return func(s *DirectoryService) {
		if src != nil {
			s.source = src
			s.sourceKind = kind
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *DirectoryService) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *DirectoryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewDirectoryService constructs the service around store.
func NewDirectoryService(store Store, opts ...Option) *DirectoryService {
	s := &DirectoryService{
		store:      store,
		sourceKind: source.KindLocal,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFn:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SourceKind reports where AllPersons reads from.
func (s *DirectoryService) SourceKind() source.Kind {
	return s.sourceKind
}

// PersonCount returns the number of persons in the local store.
func (s *DirectoryService) PersonCount(context.Context) int {
	s.metrics.ObserveOperation("personCount", metrics.OutcomeOK)
	return s.store.Count()
}

// AllPersons lists persons, optionally filtered by phone presence. With a
// remote source configured the list comes from a fresh snapshot and the local
// store is not read.
func (s *DirectoryService) AllPersons(ctx context.Context, filter domain.PhoneFilter) ([]domain.Person, error) {
	if s.source == nil {
		s.metrics.ObserveOperation("allPersons", metrics.OutcomeOK)
		return filter.Apply(s.store.All()), nil
	}

	start := s.nowFn()
	snapshot, err := s.source.Fetch(ctx)
	s.metrics.ObserveFetch(string(s.sourceKind), s.nowFn().Sub(start), err)
	if err != nil {
		s.metrics.ObserveOperation("allPersons", metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "person snapshot fetch failed", "source", s.sourceKind, "error", err)
		return nil, fmt.Errorf("fetch persons snapshot: %w", err)
	}

	s.metrics.ObserveOperation("allPersons", metrics.OutcomeOK)
	return filter.Apply(snapshot), nil
}

// FindPerson returns nil when nobody has the given name.
func (s *DirectoryService) FindPerson(_ context.Context, name string) *domain.Person {
	p, ok := s.store.FindByName(name)
	if !ok {
		s.metrics.ObserveOperation("findPerson", metrics.OutcomeNotFound)
		return nil
	}
	s.metrics.ObserveOperation("findPerson", metrics.OutcomeOK)
	return &p
}

// AddPerson stores a new person. A taken name yields *directory.DuplicateNameError
// and leaves the store unchanged.
func (s *DirectoryService) AddPerson(ctx context.Context, in PersonInput) (domain.Person, error) {
	p, err := s.store.Insert(in.ToDomain())
	if err != nil {
		var dup *directory.DuplicateNameError
		if errors.As(err, &dup) {
			s.metrics.ObserveOperation("addPerson", metrics.OutcomeRejected)
			s.logger.InfoContext(ctx, "duplicate person rejected", "name", dup.Name)
			return domain.Person{}, err
		}
		s.metrics.ObserveOperation("addPerson", metrics.OutcomeError)
		return domain.Person{}, fmt.Errorf("add person %s: %w", in.Name, err)
	}

	s.metrics.ObserveOperation("addPerson", metrics.OutcomeOK)
	s.metrics.IncrementPersonsAdded()
	s.logger.InfoContext(ctx, "person added", "name", p.Name, "id", p.ID)
	return p, nil
}

// EditNumber replaces the phone of the named person and returns nil when no
// such person exists. A nil phone clears the number.
func (s *DirectoryService) EditNumber(ctx context.Context, name string, phone *string) *domain.Person {
	p, ok := s.store.UpdatePhone(name, phone)
	if !ok {
		s.metrics.ObserveOperation("editNumber", metrics.OutcomeNotFound)
		return nil
	}
	s.metrics.ObserveOperation("editNumber", metrics.OutcomeOK)
	s.logger.DebugContext(ctx, "phone updated", "name", p.Name, "id", p.ID)
	return &p
}

// Probe checks that the configured snapshot source is reachable.
func (s *DirectoryService) Probe(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	return s.source.Probe(ctx)
}
