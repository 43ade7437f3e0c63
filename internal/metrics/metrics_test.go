// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDomainCounters(t *testing.T) {
	m := New()

	m.EventCreated("public")
	m.EventCreated("public")
	m.EventCreated("rso")
	m.RSOCreated()
	m.RSOApproved()
	m.Login(true)
	m.Login(false)
	m.Login(false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.EventsCreated.WithLabelValues("public")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EventsCreated.WithLabelValues("rso")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RSOsCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RSOApprovals), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Logins.WithLabelValues("failure")), 0)
}

func TestNilRegistryIsSafe(t *testing.T) {
	var m *Registry

	assert.NotPanics(t, func() {
		m.EventCreated("public")
		m.RSOCreated()
		m.RSOApproved()
		m.Login(true)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RSOCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "uni_events_rsos_created_total 1")
}
