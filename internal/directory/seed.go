package directory

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vanshika/phonebook/backend/internal/domain"
)

// DefaultSeed returns the contacts every fresh directory starts with.
func DefaultSeed() []domain.Person {
	return []domain.Person{
		{ID: "1", Name: "Aaron", Phone: domain.StringPtr("66654130"), Street: "Dr Aiguader", City: "Barcelona"},
		{ID: "2", Name: "Becky", Phone: domain.StringPtr("78904512"), Street: "5th Ave", City: "New York"},
		{ID: "3", Name: "Carol", Phone: domain.StringPtr("98765432"), Street: "Baker St", City: "London"},
		{ID: "4", Name: "David", Phone: domain.StringPtr("66554321"), Street: "6th St", City: "Chicago"},
		{ID: "5", Name: "Emily", Phone: domain.StringPtr("45678901"), Street: "Main St", City: "Boston"},
		{ID: "6", Name: "Frank", Phone: domain.StringPtr("33332111"), Street: "Market St", City: "Philadelphia"},
	}
}

type seedFile struct {
	Persons []seedPerson `toml:"person"`
}

type seedPerson struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Phone  *string `toml:"phone"`
	Street string  `toml:"street"`
	City   string  `toml:"city"`
}

// LoadSeedFile reads a TOML file of [[person]] tables.
func LoadSeedFile(path string) ([]domain.Person, error) {
	var raw seedFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load seed file: %w", err)
	}
	return raw.toDomain()
}

// ParseSeed decodes TOML seed data held in memory.
func ParseSeed(data string) ([]domain.Person, error) {
	var raw seedFile
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return raw.toDomain()
}

func (f seedFile) toDomain() ([]domain.Person, error) {
	persons := make([]domain.Person, 0, len(f.Persons))
	for i, raw := range f.Persons {
		p := domain.Person{
			ID:     strings.TrimSpace(raw.ID),
			Name:   raw.Name,
			Phone:  raw.Phone,
			Street: raw.Street,
			City:   raw.City,
		}
		switch {
		case p.ID == "":
			return nil, fmt.Errorf("seed person %d: id is required", i)
		case p.Name == "":
			return nil, fmt.Errorf("seed person %d: name is required", i)
		case p.Street == "" || p.City == "":
			return nil, fmt.Errorf("seed person %q: street and city are required", p.Name)
		}
		persons = append(persons, p)
	}
	return persons, nil
}
