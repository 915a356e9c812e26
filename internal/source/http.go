package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vanshika/phonebook/backend/internal/domain"
)

const maxSnapshotBytes = 16 << 20

// HTTPSource fetches a JSON array of persons with a GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource builds a source for url. A zero timeout leaves requests
// bounded only by the caller's context.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// remotePerson accepts flat street/city fields as well as a nested address.
type remotePerson struct {
	ID      remoteID `json:"id"`
	Name    string   `json:"name"`
	Phone   *string  `json:"phone"`
	Street  string   `json:"street"`
	City    string   `json:"city"`
	Address *struct {
		Street string `json:"street"`
		City   string `json:"city"`
	} `json:"address"`
}

// remoteID accepts both string and numeric ids.
type remoteID string

func (id *remoteID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = remoteID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("person id: %w", err)
	}
	*id = remoteID(s)
	return nil
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Person, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch persons from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return nil, fmt.Errorf("read persons snapshot: %w", err)
	}
	return parseSnapshot(resp.StatusCode, body)
}

// Probe issues a fetch and discards the result.
func (s *HTTPSource) Probe(ctx context.Context) error {
	_, err := s.Fetch(ctx)
	return err
}

func parseSnapshot(status int, body []byte) ([]domain.Person, error) {
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("persons source returned status %d", status)
	}

	var raw []remotePerson
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode persons snapshot: %w", err)
	}

	persons := make([]domain.Person, 0, len(raw))
	for _, r := range raw {
		p := domain.Person{
			ID:     string(r.ID),
			Name:   r.Name,
			Phone:  r.Phone,
			Street: r.Street,
			City:   r.City,
		}
		if r.Address != nil {
			if p.Street == "" {
				p.Street = r.Address.Street
			}
			if p.City == "" {
				p.City = r.Address.City
			}
		}
		persons = append(persons, p)
	}
	return persons, nil
}
