package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/vanshika/phonebook/backend/internal/service"
)

// Generator produces contact datasets with unique names.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumPersons <= 0 {
		cfg.NumPersons = DefaultConfig().NumPersons
	}
	if cfg.MissingPhoneChance < 0 {
		cfg.MissingPhoneChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises persons. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) ([]service.IngestRecord, error) {
	records := make([]service.IngestRecord, 0, g.cfg.NumPersons)
	used := make(map[string]int, g.cfg.NumPersons)

	for i := 0; i < g.cfg.NumPersons; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := g.randomFullName()
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s %d", name, n+1)
		}
		used[name]++

		var phone *string
		if g.rand.Float64() >= g.cfg.MissingPhoneChance {
			p := g.randomPhone()
			phone = &p
		}

		records = append(records, service.IngestRecord{
			ID: strconv.Itoa(i + 1),
			PersonInput: service.PersonInput{
				Name:   name,
				Phone:  phone,
				Street: g.randomStreet(),
				City:   g.randomCity(),
			},
		})
	}
	return records, nil
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.pick(g.nameFragments.first), g.pick(g.nameFragments.last))
}

func (g *Generator) randomPhone() string {
	return fmt.Sprintf("%08d", g.rand.Intn(100000000))
}

func (g *Generator) randomStreet() string {
	return fmt.Sprintf("%s %s", g.pick(g.nameFragments.streetNames), g.pick(g.nameFragments.streetSuffix))
}

func (g *Generator) randomCity() string {
	return g.pick(g.nameFragments.cities)
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

type nameFragments struct {
	first        []string
	last         []string
	streetNames  []string
	streetSuffix []string
	cities       []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:        []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:         []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		streetNames:  []string{"Market", "Mission", "Broadway", "Fifth", "Sunset", "Park", "Cedar", "Oak", "Baker", "Main"},
		streetSuffix: []string{"St", "Ave", "Blvd", "Ln", "Rd", "Way"},
		cities:       []string{"Barcelona", "New York", "London", "Chicago", "Boston", "Philadelphia", "Seattle", "Austin", "Dublin"},
	}
}
