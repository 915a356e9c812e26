// Package source provides the snapshots that back the allPersons query.
//
// With the local kind no source is built and allPersons reads the directory
// store. The http and graph sources read an external system on every call and
// never write into the store, so a directory running with a remote source
// answers allPersons from data that addPerson and editNumber do not touch.
package source

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks PersonSource

import (
	"context"
	"errors"

	"github.com/vanshika/phonebook/backend/internal/domain"
)

// Kind names a source implementation in configuration.
type Kind string

const (
	KindLocal Kind = "local"
	KindHTTP  Kind = "http"
	KindGraph Kind = "graph"
)

// ErrUnknownSource is returned for unrecognised source kinds.
var ErrUnknownSource = errors.New("unknown person source")

// PersonSource yields the current list of persons.
type PersonSource interface {
	Fetch(ctx context.Context) ([]domain.Person, error)
	Probe(ctx context.Context) error
}
