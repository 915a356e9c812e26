package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vanshika/phonebook/backend/internal/directory"
	"github.com/vanshika/phonebook/backend/internal/domain"
	"github.com/vanshika/phonebook/backend/internal/logging"
	"github.com/vanshika/phonebook/backend/internal/metrics"
	"github.com/vanshika/phonebook/backend/internal/service"
	"github.com/vanshika/phonebook/backend/internal/source"
)

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

type personPayload struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	City    string  `json:"city"`
	ID      string  `json:"id"`
	Address struct {
		Street string `json:"street"`
		City   string `json:"city"`
	} `json:"address"`
}

const personFields = `name phone city id address { street city }`

type failingSource struct{ err error }

func (f failingSource) Fetch(context.Context) ([]domain.Person, error) { return nil, f.err }
func (f failingSource) Probe(context.Context) error                    { return f.err }

type GraphQLSuite struct {
	suite.Suite
	store  *directory.Store
	router http.Handler
}

func TestGraphQLSuite(t *testing.T) {
	suite.Run(t, new(GraphQLSuite))
}

func (s *GraphQLSuite) SetupTest() {
	store, err := directory.NewStore(directory.DefaultSeed())
	s.Require().NoError(err)
	s.store = store
	s.router = s.newRouter(service.NewDirectoryService(store))
}

func (s *GraphQLSuite) newRouter(svc *service.DirectoryService) http.Handler {
	schema, err := NewSchema(svc)
	s.Require().NoError(err)
	logger := logging.Discard()
	return NewRouter(logger, RouterDependencies{
		Health:  svc,
		GraphQL: NewGraphQLHandler(logger, schema),
		Metrics: metrics.New().Handler(),
	})
}

func (s *GraphQLSuite) do(router http.Handler, query string, vars map[string]any) gqlResponse {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp gqlResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *GraphQLSuite) TestPersonCount() {
	resp := s.do(s.router, `{ personCount }`, nil)
	s.Empty(resp.Errors)
	s.JSONEq(`6`, string(resp.Data["personCount"]))
}

func (s *GraphQLSuite) TestFindPerson() {
	resp := s.do(s.router, `query($name: String!) { findPerson(name: $name) { `+personFields+` } }`,
		map[string]any{"name": "Carol"})
	s.Require().Empty(resp.Errors)

	var carol personPayload
	s.Require().NoError(json.Unmarshal(resp.Data["findPerson"], &carol))
	s.Equal("3", carol.ID)
	s.Equal("Baker St", carol.Address.Street)
	s.Equal("London", carol.Address.City)
	s.Equal(carol.City, carol.Address.City)

	missing := s.do(s.router, `{ findPerson(name: "Nobody") { id } }`, nil)
	s.Empty(missing.Errors)
	s.JSONEq(`null`, string(missing.Data["findPerson"]))
}

func (s *GraphQLSuite) TestAddPerson() {
	resp := s.do(s.router, `mutation { addPerson(name: "Grace", street: "Elm St", city: "Dublin") { `+personFields+` } }`, nil)
	s.Require().Empty(resp.Errors)

	var grace personPayload
	s.Require().NoError(json.Unmarshal(resp.Data["addPerson"], &grace))
	s.NotEmpty(grace.ID)
	s.Nil(grace.Phone)
	s.Equal("Elm St", grace.Address.Street)

	all := s.do(s.router, `{ personCount allPersons { name } }`, nil)
	s.JSONEq(`7`, string(all.Data["personCount"]))
	var names []struct{ Name string }
	s.Require().NoError(json.Unmarshal(all.Data["allPersons"], &names))
	s.Equal("Aaron", names[0].Name)
	s.Equal("Grace", names[6].Name)
}

func (s *GraphQLSuite) TestAddPersonDuplicate() {
	resp := s.do(s.router, `mutation { addPerson(name: "Aaron", phone: "1", street: "x", city: "y") { id } }`, nil)

	s.Require().Len(resp.Errors, 1)
	s.Equal("Person already exists", resp.Errors[0].Message)
	s.Equal("BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
	s.Equal("Aaron", resp.Errors[0].Extensions["invalidArgs"])
	s.JSONEq(`null`, string(resp.Data["addPerson"]))
	s.Equal(6, s.store.Count())
}

func (s *GraphQLSuite) TestEditNumber() {
	const mutation = `mutation { editNumber(name: "Aaron", phone: "00000000") { ` + personFields + ` } }`

	first := s.do(s.router, mutation, nil)
	s.Require().Empty(first.Errors)
	var aaron personPayload
	s.Require().NoError(json.Unmarshal(first.Data["editNumber"], &aaron))
	s.Equal("Aaron", aaron.Name)
	s.Require().NotNil(aaron.Phone)
	s.Equal("00000000", *aaron.Phone)
	s.Equal("1", aaron.ID)
	s.Equal("Dr Aiguader", aaron.Address.Street)
	s.Equal("Barcelona", aaron.City)

	second := s.do(s.router, mutation, nil)
	s.JSONEq(string(first.Data["editNumber"]), string(second.Data["editNumber"]))

	missing := s.do(s.router, `mutation { editNumber(name: "Nobody", phone: "1") { id } }`, nil)
	s.Empty(missing.Errors)
	s.JSONEq(`null`, string(missing.Data["editNumber"]))
	s.Equal(6, s.store.Count())
}

func (s *GraphQLSuite) TestAllPersonsPhoneFilter() {
	s.do(s.router, `mutation { addPerson(name: "Grace", street: "Elm St", city: "Dublin") { id } }`, nil)

	yes := s.do(s.router, `{ allPersons(phone: YES) { name } }`, nil)
	s.Require().Empty(yes.Errors)
	var withPhone []struct{ Name string }
	s.Require().NoError(json.Unmarshal(yes.Data["allPersons"], &withPhone))
	s.Len(withPhone, 6)

	no := s.do(s.router, `query($p: YesNo) { allPersons(phone: $p) { name phone } }`, map[string]any{"p": "NO"})
	s.Require().Empty(no.Errors)
	s.JSONEq(`[{"name":"Grace","phone":null}]`, string(no.Data["allPersons"]))
}

func (s *GraphQLSuite) TestAllPersonsRemoteFailure() {
	svc := service.NewDirectoryService(s.store,
		service.WithSource(source.KindHTTP, failingSource{err: errors.New("connection refused")}))
	router := s.newRouter(svc)

	resp := s.do(router, `{ allPersons { name } }`, nil)
	s.Require().NotEmpty(resp.Errors)
	s.Nil(resp.Data)

	count := s.do(router, `{ personCount }`, nil)
	s.JSONEq(`6`, string(count.Data["personCount"]))
}

func (s *GraphQLSuite) TestHealthz() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Equal(http.StatusOK, rec.Code)

	svc := service.NewDirectoryService(s.store,
		service.WithSource(source.KindHTTP, failingSource{err: errors.New("down")}))
	rec = httptest.NewRecorder()
	s.newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *GraphQLSuite) TestBadRequests() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{`))))
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?query=%7BpersonCount%7D", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":{"personCount":6}}`, rec.Body.String())
}

func (s *GraphQLSuite) TestGetMutationRejected() {
	target := "/graphql?query=" + url.QueryEscape(`mutation { addPerson(name: "Mallory", street: "x", city: "y") { id } }`)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal(http.MethodPost, rec.Header().Get("Allow"))
	s.Equal(6, s.store.Count())
	_, found := s.store.FindByName("Mallory")
	s.False(found)

	named := url.Values{
		"query":         {`query Count { personCount } mutation Edit { editNumber(name: "Aaron", phone: "0") { id } }`},
		"operationName": {"Edit"},
	}
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+named.Encode(), nil))
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	aaron, _ := s.store.FindByName("Aaron")
	s.Equal("66654130", *aaron.Phone)

	named.Set("operationName", "Count")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+named.Encode(), nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":{"personCount":6}}`, rec.Body.String())
}

func TestOperationType(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		operationName string
		want          string
	}{
		{name: "shorthand query", query: `{ personCount }`, want: "query"},
		{name: "mutation", query: `mutation { editNumber(name: "A") { id } }`, want: "mutation"},
		{name: "selected by name", query: `query A { personCount } mutation B { editNumber(name: "A") { id } }`, operationName: "B", want: "mutation"},
		{name: "ambiguous without name", query: `query A { personCount } mutation B { editNumber(name: "A") { id } }`, want: ""},
		{name: "syntax error", query: `{ personCount`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := operationType(tt.query, tt.operationName); got != tt.want {
				t.Fatalf("operationType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func (s *GraphQLSuite) TestMetricsRoute() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, rec.Code)
}
