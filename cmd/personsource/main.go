// Command personsource serves a fixed list of persons as JSON at /persons,
// standing in for the remote source the directory can read allPersons from.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vanshika/phonebook/backend/internal/config"
	"github.com/vanshika/phonebook/backend/internal/directory"
	"github.com/vanshika/phonebook/backend/internal/generator"
	"github.com/vanshika/phonebook/backend/internal/logging"
)

type personJSON struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone,omitempty"`
	Street string  `json:"street"`
	City   string  `json:"city"`
	ID     string  `json:"id"`
}

func main() {
	var (
		addr    = flag.String("addr", "localhost:3000", "listen address")
		dataset = flag.String("dataset", "", "persons.json to serve; the built-in contacts when empty")
	)
	flag.Parse()

	logger := logging.New(config.LoggingConfig{Level: "info"}).With("component", "personsource")

	persons, err := loadPersons(*dataset)
	if err != nil {
		logger.Error("failed to load persons", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/persons", personsHandler(logger, persons))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("serving persons", "addr", *addr, "count", len(persons))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("listen failed", "error", err)
		os.Exit(1)
	}
}

func personsHandler(logger *slog.Logger, persons []personJSON) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(persons); err != nil {
			logger.Warn("failed to write persons", "error", err, "request_id", middleware.GetReqID(r.Context()))
		}
	}
}

func loadPersons(path string) ([]personJSON, error) {
	if path == "" {
		seed := directory.DefaultSeed()
		out := make([]personJSON, 0, len(seed))
		for _, p := range seed {
			out = append(out, personJSON{Name: p.Name, Phone: p.Phone, Street: p.Street, City: p.City, ID: p.ID})
		}
		return out, nil
	}

	records, err := generator.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	out := make([]personJSON, 0, len(records))
	for i, rec := range records {
		id := rec.ID
		if id == "" {
			id = fmt.Sprint(i + 1)
		}
		out = append(out, personJSON{Name: rec.Name, Phone: rec.Phone, Street: rec.Street, City: rec.City, ID: id})
	}
	return out, nil
}
