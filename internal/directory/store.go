package directory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vanshika/phonebook/backend/internal/domain"
)

// maxIDAttempts bounds how often Insert asks for a new id before giving up.
const maxIDAttempts = 8

// ErrIDExhausted is returned when no unused id could be generated.
var ErrIDExhausted = errors.New("no unused person id after retries")

// Store is the in-memory directory. Records keep insertion order; names and
// ids are unique.
type Store struct {
	mu      sync.RWMutex
	byName  map[string]int
	ids     map[string]struct{}
	persons []domain.Person
	newID   func() (string, error)
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore builds a store holding the seed records. Seed ids are kept as given.
func NewStore(seed []domain.Person, opts ...Option) (*Store, error) {
	s := &Store{
		byName:  make(map[string]int, len(seed)),
		ids:     make(map[string]struct{}, len(seed)),
		persons: make([]domain.Person, 0, len(seed)),
		newID:   NewPersonID,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, p := range seed {
		if p.ID == "" {
			return nil, fmt.Errorf("seed person %q has no id", p.Name)
		}
		if _, exists := s.byName[p.Name]; exists {
			return nil, &DuplicateNameError{Name: p.Name}
		}
		if _, exists := s.ids[p.ID]; exists {
			return nil, fmt.Errorf("seed id %q used twice", p.ID)
		}
		s.append(p.WithPhone(p.Phone))
	}
	return s, nil
}

// Count returns the number of stored persons.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons)
}

// All returns a copy of every person in insertion order.
func (s *Store) All() []domain.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Person, len(s.persons))
	for i, p := range s.persons {
		out[i] = p.WithPhone(p.Phone)
	}
	return out
}

// FindByName looks a person up by exact name.
func (s *Store) FindByName(name string) (domain.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byName[name]
	if !ok {
		return domain.Person{}, false
	}
	p := s.persons[idx]
	return p.WithPhone(p.Phone), true
}

// Insert stores candidate under a freshly generated id. Any id on candidate is
// ignored.
func (s *Store) Insert(candidate domain.Person) (domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[candidate.Name]; exists {
		return domain.Person{}, &DuplicateNameError{Name: candidate.Name}
	}

	var id string
	for attempt := 0; attempt < maxIDAttempts && id == ""; attempt++ {
		generated, err := s.newID()
		if err != nil {
			return domain.Person{}, fmt.Errorf("generate person id: %w", err)
		}
		if _, taken := s.ids[generated]; !taken {
			id = generated
		}
	}
	if id == "" {
		return domain.Person{}, ErrIDExhausted
	}

	p := candidate.WithPhone(candidate.Phone)
	p.ID = id
	s.append(p)
	return p.WithPhone(p.Phone), nil
}

// UpdatePhone replaces the phone of the named person. The second result is
// false when nobody has that name.
func (s *Store) UpdatePhone(name string, phone *string) (domain.Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byName[name]
	if !ok {
		return domain.Person{}, false
	}
	s.persons[idx] = s.persons[idx].WithPhone(phone)
	p := s.persons[idx]
	return p.WithPhone(p.Phone), true
}

// caller holds mu
func (s *Store) append(p domain.Person) {
	s.byName[p.Name] = len(s.persons)
	s.ids[p.ID] = struct{}{}
	s.persons = append(s.persons, p)
}

// NewPersonID returns a time-based (version 1) uuid string.
func NewPersonID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
