// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/metrics"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*UserInfo
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*UserInfo)}
}

func (m *memUsers) Create(_ context.Context, u NewUser) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, ErrEmailExists
		}
		if existing.Username == u.Username {
			return nil, ErrUsernameExists
		}
	}

	info := &UserInfo{
		ID:           uuid.NewString(),
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		UniversityID: u.UniversityID,
		CreatedAt:    time.Now(),
	}
	m.users[info.ID] = info
	return info, nil
}

func (m *memUsers) find(match func(*UserInfo) bool) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (m *memUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	return m.find(func(u *UserInfo) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	return m.find(func(u *UserInfo) bool { return u.Email == email })
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*UserInfo, error) {
	return m.find(func(u *UserInfo) bool { return u.Username == username })
}

type fakeUniversities map[string]bool

func (f fakeUniversities) Exists(_ context.Context, id string) (bool, error) {
	return f[id], nil
}

type memDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func (d *memDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = make(map[string]time.Duration)
	}
	d.revoked[id] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

type linkCall struct{ email, userID string }

type fakeLinker struct {
	calls []linkCall
	err   error
}

func (f *fakeLinker) LinkMemberships(_ context.Context, email, userID string) error {
	f.calls = append(f.calls, linkCall{email, userID})
	return f.err
}

const testUniversity = "7b0c9c44-8f0c-4a43-9d33-6b7e7f8e0a11"

type serviceFixture struct {
	svc      *Service
	users    *memUsers
	denylist *memDenylist
	linker   *fakeLinker
	metrics  *metrics.Registry
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		users:    newMemUsers(),
		denylist: &memDenylist{},
		linker:   &fakeLinker{},
		metrics:  metrics.New(),
	}
	f.svc = NewService(
		newTestManager(t, testJWTConfig()),
		f.users,
		fakeUniversities{testUniversity: true},
		f.denylist,
		WithMembershipLinker(f.linker),
		WithMetrics(f.metrics),
	)
	return f
}

func registerRequest(username, email string) RegisterRequest {
	return RegisterRequest{
		Username:     username,
		Name:         "Test User",
		Email:        email,
		Password:     "correct-horse-battery",
		Role:         "admin",
		UniversityID: testUniversity,
	}
}

func TestRegisterThenLoginCarriesIdentity(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, registerRequest("alice", "a@uni.edu"))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)

	stored, err := f.users.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", stored.PasswordHash)

	for _, identifier := range []string{"alice", "A@UNI.EDU"} {
		resp, err := f.svc.Login(ctx, LoginRequest{
			Username: identifier,
			Password: "correct-horse-battery",
		})
		require.NoError(t, err, identifier)

		claims, err := f.svc.VerifyAccessToken(ctx, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, testUniversity, claims.UniversityID)
	}

	want := linkCall{"a@uni.edu", reg.ID}
	assert.Equal(t, []linkCall{want, want, want}, f.linker.calls)
}

func TestLoginRetriesMembershipLinking(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.linker.err = errors.New("deadlock detected")
	reg, err := f.svc.Register(ctx, registerRequest("gina", "g@uni.edu"))
	require.NoError(t, err)
	require.Len(t, f.linker.calls, 1)

	f.linker.err = nil
	_, err = f.svc.Login(ctx, LoginRequest{Username: "gina", Password: "correct-horse-battery"})
	require.NoError(t, err)

	require.Len(t, f.linker.calls, 2)
	assert.Equal(t, linkCall{"g@uni.edu", reg.ID}, f.linker.calls[1])

	_, err = f.svc.Login(ctx, LoginRequest{Username: "gina", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, f.linker.calls, 2)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("bob", "b@uni.edu"))
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, LoginRequest{Username: "bob", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)

	resp, err = f.svc.Login(ctx, LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestRegisterConflictsAndUnknownUniversity(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest("carol", "c@uni.edu"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerRequest("carol2", "c@uni.edu"))
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = f.svc.Register(ctx, registerRequest("carol", "other@uni.edu"))
	assert.ErrorIs(t, err, ErrUsernameExists)

	req := registerRequest("dave", "d@uni.edu")
	req.UniversityID = uuid.NewString()
	_, err = f.svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUnknownUniversity)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, registerRequest("erin", "e@uni.edu"))
	require.NoError(t, err)

	claims, err := f.svc.VerifyAccessToken(ctx, reg.Token)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))
	assert.Greater(t, f.denylist.revoked[claims.TokenID], 59*time.Minute)

	_, err = f.svc.VerifyAccessToken(ctx, reg.Token)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifyFailsOpenWhenDenylistDown(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, registerRequest("frank", "f@uni.edu"))
	require.NoError(t, err)

	f.denylist.err = errors.New("connection refused")

	claims, err := f.svc.VerifyAccessToken(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.UserID)
}

func TestEnsureSuperAdmin(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	seed := SuperAdminSeed{
		Username:     "root",
		Name:         "Campus Root",
		Email:        "Root@UCF.edu",
		Password:     "long-enough-secret",
		UniversityID: testUniversity,
	}

	first, created, err := f.svc.EnsureSuperAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "super_admin", first.Role)
	assert.Equal(t, "root@ucf.edu", first.Email)

	seed.Password = "rotated-in-config"
	again, created, err := f.svc.EnsureSuperAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	_, err = f.svc.Login(ctx, LoginRequest{Username: "root", Password: "long-enough-secret"})
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerRequest("stu", "stu@ucf.edu"))
	require.NoError(t, err)

	_, _, err = f.svc.EnsureSuperAdmin(ctx, SuperAdminSeed{
		Username:     "stu2",
		Name:         "Student",
		Email:        "stu@ucf.edu",
		Password:     "long-enough-secret",
		UniversityID: testUniversity,
	})
	assert.ErrorIs(t, err, ErrNotSuperAdmin)
}
