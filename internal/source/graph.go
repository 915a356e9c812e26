package source

import (
	"context"

	"github.com/vanshika/phonebook/backend/internal/domain"
)

// PersonLister is the slice of the graph repository a GraphSource needs.
type PersonLister interface {
	ListPersons(ctx context.Context) ([]domain.Person, error)
	Ping(ctx context.Context) error
}

// GraphSource reads person nodes from the graph database.
type GraphSource struct {
	repo PersonLister
}

func NewGraphSource(repo PersonLister) *GraphSource {
	return &GraphSource{repo: repo}
}

func (s *GraphSource) Fetch(ctx context.Context) ([]domain.Person, error) {
	return s.repo.ListPersons(ctx)
}

func (s *GraphSource) Probe(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
