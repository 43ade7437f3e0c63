// AngelaMos | 2026
// handler_test.go

package rso

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/auth/authtest"
	"github.com/carterperez-dev/uni-events/internal/metrics"
	"github.com/carterperez-dev/uni-events/internal/middleware"
)

type handlerFixture struct {
	router  http.Handler
	jwt     *auth.JWTManager
	repo    *memRepo
	metrics *metrics.Registry
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		jwt:     authtest.NewManager(t),
		repo:    newMemRepo(),
		metrics: metrics.New(),
	}
	users := fakeUsers{adminID: {ID: adminID, Email: "a@uni.edu", Role: "admin"}}
	svc := NewService(f.repo, users, 5, f.metrics)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(f.jwt))
	})
	f.router = r
	return f
}

func (f *handlerFixture) send(t *testing.T, method, path, role, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		req.Header.Set("Authorization", authtest.Bearer(t, f.jwt, adminID, role, uniID))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

const createBody = `{
	"name": "Chess",
	"description": "weekly games",
	"members": ["b@uni.edu", "c@uni.edu", "d@uni.edu", "e@uni.edu"]
}`

func TestCreateRSOHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.send(t, http.MethodPost, "/api/rso/create", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.send(t, http.MethodPost, "/api/rso/create", middleware.RoleStudent, createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateRSOResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.RSOID)

	rec = f.send(t, http.MethodPost, "/api/rso/create", middleware.RoleStudent, createBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateRSOHandlerRejectsRoster(t *testing.T) {
	f := newHandlerFixture(t)

	cases := map[string]string{
		"mismatch": `{"name":"A","description":"d","members":["x@uni.edu","y@uni.edu","z@other.edu"]}`,
		"too few":  `{"name":"B","description":"d","members":["x@uni.edu","y@uni.edu"]}`,
		"empty":    `{"name":"C","description":"d","members":[]}`,
		"missing":  `{"name":"D","description":"d"}`,
		"bad mail": `{"name":"E","description":"d","members":["not-an-email"]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := f.send(t, http.MethodPost, "/api/rso/create", middleware.RoleAdmin, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	assert.Zero(t, f.repo.calls)
}

func TestApproveAndPendingRequireSuperAdmin(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.send(t, http.MethodPost, "/api/rso/create", middleware.RoleAdmin, createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CreateRSOResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	approveBody := `{"rsoId":"` + created.RSOID + `"}`

	for _, role := range []string{"", middleware.RoleStudent, middleware.RoleAdmin} {
		want := http.StatusForbidden
		if role == "" {
			want = http.StatusUnauthorized
		}
		assert.Equal(t, want, f.send(t, http.MethodPost, "/api/rso/approve", role, approveBody).Code, role)
		assert.Equal(t, want, f.send(t, http.MethodGet, "/api/rso/pending", role, "").Code, role)
	}

	rec = f.send(t, http.MethodGet, "/api/rso/pending", middleware.RoleSuperAdmin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []RSOResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pending))
	require.Len(t, pending, 1)
	assert.Equal(t, 5, pending[0].MemberCount)

	for range 2 {
		rec = f.send(t, http.MethodPost, "/api/rso/approve", middleware.RoleSuperAdmin, approveBody)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RSOApprovals))

	rec = f.send(t, http.MethodGet, "/api/rso", middleware.RoleStudent, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []RSOResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, StatusApproved, listed[0].Status)

	rec = f.send(t, http.MethodPost, "/api/rso/approve", middleware.RoleSuperAdmin,
		`{"rsoId":"33333333-3333-4333-8333-333333333333"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.send(t, http.MethodPost, "/api/rso/approve", middleware.RoleSuperAdmin, `{"rsoId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
