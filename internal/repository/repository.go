package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/phonebook/backend/internal/domain"
	"github.com/vanshika/phonebook/backend/internal/graph"
)

const upsertPersonCypher = `
MERGE (p:Person {name: $name})
ON CREATE SET p.id = $id, p.createdAt = timestamp()
SET p.phone = $phone,
    p.street = $street,
    p.city = $city
RETURN p.id AS id`

const listPersonsCypher = `
MATCH (p:Person)
RETURN p.id AS id, p.name AS name, p.phone AS phone, p.street AS street, p.city AS city
ORDER BY p.createdAt, p.id`

// Repository reads and writes Person nodes in the graph.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// UpsertPerson merges a person node by name. The id is only written when the
// node is created, so existing ids never change.
func (r *Repository) UpsertPerson(ctx context.Context, p domain.Person) error {
	if p.Name == "" {
		return errors.New("person name is required")
	}
	if p.ID == "" {
		return fmt.Errorf("person %s: id is required", p.Name)
	}

	var phone any
	if p.Phone != nil {
		phone = *p.Phone
	}
	params := map[string]any{
		"id":     p.ID,
		"name":   p.Name,
		"phone":  phone,
		"street": p.Street,
		"city":   p.City,
	}

	if _, err := r.client.ExecuteWrite(ctx, upsertPersonCypher, params); err != nil {
		return fmt.Errorf("upsert person %s: %w", p.Name, err)
	}
	return nil
}

// ListPersons returns every person node.
func (r *Repository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	res, err := r.client.ExecuteRead(ctx, listPersonsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list persons query: %w", err)
	}

	persons := make([]domain.Person, 0, len(res.Records))
	for _, record := range res.Records {
		persons = append(persons, domain.Person{
			ID:     record.String("id"),
			Name:   record.String("name"),
			Phone:  record.OptionalString("phone"),
			Street: record.String("street"),
			City:   record.String("city"),
		})
	}
	return persons, nil
}

// Ping checks graph connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.VerifyConnectivity(ctx)
}
