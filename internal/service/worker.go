package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/phonebook/backend/internal/directory"
	"github.com/vanshika/phonebook/backend/internal/domain"
)

// TaskError accumulates the per-record failures of a bulk ingest.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

// PersonWriter persists ingested persons.
type PersonWriter interface {
	UpsertPerson(ctx context.Context, p domain.Person) error
}

// BulkIngestor writes person datasets through a bounded worker pool.
type BulkIngestor struct {
	writer  PersonWriter
	workers int
	newID   func() (string, error)
}

// NewBulkIngestor creates a BulkIngestor with the given concurrency.
func NewBulkIngestor(writer PersonWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		writer:  writer,
		workers: workers,
		newID:   directory.NewPersonID,
	}
}

// IngestPersons upserts every record, assigning ids to records without one.
// Records sharing a name are rejected before anything is written.
func (bi *BulkIngestor) IngestPersons(ctx context.Context, records []IngestRecord) error {
	persons, err := bi.prepare(records)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		taskErr TaskError
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bi.workers)

	for _, p := range persons {
		if gctx.Err() != nil {
			break
		}
		p := p
		g.Go(func() error {
			if err := bi.writer.UpsertPerson(gctx, p); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				mu.Lock()
				taskErr.Errors = append(taskErr.Errors, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(taskErr.Errors) == 0 {
		return nil
	}
	return &taskErr
}

func (bi *BulkIngestor) prepare(records []IngestRecord) ([]domain.Person, error) {
	seen := make(map[string]struct{}, len(records))
	var taskErr TaskError
	persons := make([]domain.Person, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Name]; dup {
			taskErr.Errors = append(taskErr.Errors, errors.New("duplicate name in dataset: "+rec.Name))
			continue
		}
		seen[rec.Name] = struct{}{}

		p := rec.ToDomain()
		p.ID = rec.ID
		if p.ID == "" {
			id, err := bi.newID()
			if err != nil {
				return nil, fmt.Errorf("generate id for %s: %w", rec.Name, err)
			}
			p.ID = id
		}
		persons = append(persons, p)
	}
	if len(taskErr.Errors) > 0 {
		return nil, &taskErr
	}
	return persons, nil
}
