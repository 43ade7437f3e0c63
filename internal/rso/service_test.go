// AngelaMos | 2026
// service_test.go

package rso

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/metrics"
)

type fakeUsers map[string]*auth.UserInfo

func (f fakeUsers) GetByID(_ context.Context, id string) (*auth.UserInfo, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

// memRepo records every call so tests can assert nothing was written.
type memRepo struct {
	calls   int
	rsos    map[string]*RSO
	members map[string][]string
	links   map[string]string
	dupOnTx bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		rsos:    make(map[string]*RSO),
		members: make(map[string][]string),
		links:   make(map[string]string),
	}
}

func (m *memRepo) CreateWithMembers(_ context.Context, r *RSO, emails []string) error {
	m.calls++
	if m.dupOnTx {
		return fmt.Errorf("create rso: insert rso: %w", core.ErrDuplicateKey)
	}
	cp := *r
	cp.MemberCount = len(emails)
	m.rsos[r.ID] = &cp
	m.members[r.ID] = append([]string(nil), emails...)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*RSO, error) {
	m.calls++
	r, ok := m.rsos[id]
	if !ok {
		return nil, fmt.Errorf("get rso: %w", core.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	m.calls++
	for _, r := range m.rsos {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Approve(_ context.Context, id string) (bool, error) {
	m.calls++
	r, ok := m.rsos[id]
	if !ok || r.Status == StatusApproved {
		return false, nil
	}
	r.Status = StatusApproved
	return true, nil
}

func (m *memRepo) ListPending(_ context.Context) ([]RSO, error) {
	m.calls++
	var out []RSO
	for _, r := range m.rsos {
		if r.Status == StatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) ListApprovedByUniversity(_ context.Context, uni string) ([]RSO, error) {
	m.calls++
	var out []RSO
	for _, r := range m.rsos {
		if r.Status == StatusApproved && r.UniversityID == uni {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) ApprovedIDByName(_ context.Context, name string) (string, error) {
	m.calls++
	for _, r := range m.rsos {
		if r.Name == name && r.Status == StatusApproved {
			return r.ID, nil
		}
	}
	return "", fmt.Errorf("find approved rso: %w", core.ErrNotFound)
}

func (m *memRepo) MemberRSOIDs(_ context.Context, userID string) ([]string, error) {
	m.calls++
	var ids []string
	for id, emails := range m.members {
		for _, e := range emails {
			if m.links[e] == userID {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}

func (m *memRepo) LinkMember(_ context.Context, email, userID string) (int64, error) {
	m.calls++
	m.links[email] = userID
	return 1, nil
}

func (m *memRepo) Counts(_ context.Context) (Counts, error) {
	m.calls++
	var c Counts
	for _, r := range m.rsos {
		c.Total++
		if r.Status == StatusPending {
			c.Pending++
		}
	}
	return c, nil
}

const (
	adminID = "11111111-1111-4111-8111-111111111111"
	uniID   = "22222222-2222-4222-8222-222222222222"
)

func newTestService(repo *memRepo) *Service {
	users := fakeUsers{adminID: {ID: adminID, Email: "a@uni.edu", Role: "admin"}}
	return NewService(repo, users, 5, metrics.New())
}

func validRequest(name string) CreateRSORequest {
	return CreateRSORequest{
		Name:        name,
		Description: "chess club",
		Members:     []string{"b@uni.edu", "c@uni.edu", "d@uni.edu", "e@uni.edu"},
	}
}

func TestCreateDomainMismatchWritesNothing(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), adminID, uniID, CreateRSORequest{
		Name:    "Chess",
		Members: []string{"x@uni.edu", "y@uni.edu", "z@other.edu"},
	})

	assert.ErrorIs(t, err, ErrDomainMismatch)
	assert.Zero(t, repo.calls)
}

func TestCreateRejectsEmptyAndSmallRosters(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), adminID, uniID, CreateRSORequest{Name: "Chess"})
	assert.ErrorIs(t, err, ErrNoMembers)

	_, err = svc.Create(context.Background(), adminID, uniID, CreateRSORequest{
		Name:    "Chess",
		Members: []string{"b@uni.edu", "c@uni.edu"},
	})
	assert.ErrorIs(t, err, ErrTooFewMembers)
	assert.Zero(t, repo.calls)
}

func TestCreateWritesCallerPlusMembers(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	req := validRequest("Chess")

	created, err := svc.Create(context.Background(), adminID, uniID, req)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, adminID, created.AdminID)
	assert.Equal(t, uniID, created.UniversityID)
	assert.Len(t, repo.members[created.ID], len(req.Members)+1)
	assert.Equal(t, "a@uni.edu", repo.members[created.ID][0])
}

func TestCreateNameTaken(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), adminID, uniID, validRequest("Chess"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), adminID, uniID, validRequest("Chess"))
	assert.ErrorIs(t, err, ErrNameTaken)

	repo.dupOnTx = true
	_, err = svc.Create(context.Background(), adminID, uniID, validRequest("Go"))
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestCreateUnknownCaller(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.Create(context.Background(), "ghost", uniID, validRequest("Chess"))
	assert.ErrorIs(t, err, ErrUnknownCaller)
}

func TestApproveIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), adminID, uniID, validRequest("Chess"))
	require.NoError(t, err)

	for range 2 {
		approved, err := svc.Approve(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, approved.IsApproved())
	}

	id, err := svc.ApprovedIDByName(context.Background(), "Chess")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, err = svc.Approve(context.Background(), "33333333-3333-4333-8333-333333333333")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
