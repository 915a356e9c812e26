package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveOperation("addPerson", OutcomeOK)
	m.ObserveOperation("addPerson", OutcomeRejected)
	m.ObserveOperation("addPerson", OutcomeOK)
	m.IncrementPersonsAdded()
	m.ObserveFetch("http", 10*time.Millisecond, errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("addPerson", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("addPerson", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersonsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceFetchFails.WithLabelValues("http")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("personCount", OutcomeOK)
		m.IncrementPersonsAdded()
		m.ObserveFetch("local", time.Millisecond, nil)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncrementPersonsAdded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "phonebook_persons_added_total 1")
}
