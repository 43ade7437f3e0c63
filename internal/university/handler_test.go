// AngelaMos | 2026
// handler_test.go

package university

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/uni-events/internal/auth/authtest"
	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/middleware"
)

type memRepo struct {
	byID map[string]University
}

func (m *memRepo) Create(_ context.Context, u *University) error {
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Name, u.Name) {
			return core.ErrDuplicateKey
		}
	}
	u.CreatedAt = time.Now()
	m.byID[u.ID] = *u
	return nil
}

func (m *memRepo) GetByName(_ context.Context, name string) (*University, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Name, name) {
			cp := u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memRepo) List(_ context.Context) ([]University, error) {
	out := make([]University, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

func setup(t *testing.T) (http.Handler, func(role string) string) {
	t.Helper()

	jwt := authtest.NewManager(t)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewHandler(NewService(&memRepo{byID: map[string]University{}})).
			RegisterRoutes(r, middleware.Authenticator(jwt))
	})

	bearer := func(role string) string {
		return authtest.Bearer(t, jwt, "user-1", role, "uni-1")
	}
	return r, bearer
}

func send(h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateUniversityRequiresSuperAdmin(t *testing.T) {
	h, bearer := setup(t)
	body := `{"name":"State U","location":"Springfield"}`

	rec := send(h, http.MethodPost, "/api/universities/create", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, role := range []string{middleware.RoleStudent, middleware.RoleAdmin} {
		rec = send(h, http.MethodPost, "/api/universities/create", bearer(role), body)
		assert.Equal(t, http.StatusForbidden, rec.Code, role)
	}

	rec = send(h, http.MethodPost, "/api/universities/create", bearer(middleware.RoleSuperAdmin), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created CreateUniversityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.UniversityID)
}

func TestCreateUniversityConflictAndValidation(t *testing.T) {
	h, bearer := setup(t)
	sa := bearer(middleware.RoleSuperAdmin)

	rec := send(h, http.MethodPost, "/api/universities/create", sa, `{"name":"Tech","location":"X"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(h, http.MethodPost, "/api/universities/create", sa, `{"name":"TECH","location":"Y"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(h, http.MethodPost, "/api/universities/create", sa, `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUniversitiesIsPublicAndSorted(t *testing.T) {
	h, bearer := setup(t)
	sa := bearer(middleware.RoleSuperAdmin)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		rec := send(h, http.MethodPost, "/api/universities/create", sa,
			`{"name":"`+name+`","location":"L"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := send(h, http.MethodGet, "/api/universities", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []UniversityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zeta", list[2].Name)
}

func TestExistsRejectsMalformedID(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]University{}})

	ok, err := svc.Exists(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureIsIdempotent(t *testing.T) {
	repo := &memRepo{byID: map[string]University{}}
	svc := NewService(repo)
	ctx := context.Background()

	first, created, err := svc.Ensure(ctx, "UCF", "Orlando, FL")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.Ensure(ctx, "ucf", "Elsewhere")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Orlando, FL", again.Location)
	assert.Len(t, repo.byID, 1)
}
