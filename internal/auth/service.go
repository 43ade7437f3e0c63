// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/metrics"
	"github.com/carterperez-dev/uni-events/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUnknownUniversity  = errors.New("university does not exist")
	ErrNotSuperAdmin      = errors.New("existing account is not a super admin")
)

type UserInfo struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	UniversityID string
	CreatedAt    time.Time
}

type NewUser struct {
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	UniversityID string
}

// UserProvider must return ErrEmailExists or ErrUsernameExists from
// Create when the matching unique key is taken.
type UserProvider interface {
	Create(ctx context.Context, user NewUser) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
}

type UniversityChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// MembershipLinker attaches RSO memberships listed by email before the
// user had an account.
type MembershipLinker interface {
	LinkMemberships(ctx context.Context, email, userID string) error
}

type SuperAdminSeed struct {
	Username     string
	Name         string
	Email        string
	Password     string
	UniversityID string
}

type Option func(*Service)

func WithMembershipLinker(l MembershipLinker) Option {
	return func(s *Service) { s.linker = l }
}

func WithMetrics(m *metrics.Registry) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

type Service struct {
	jwt          *JWTManager
	users        UserProvider
	universities UniversityChecker
	denylist     Denylist
	linker       MembershipLinker
	metrics      *metrics.Registry
	logger       *slog.Logger
}

func NewService(
	jwt *JWTManager,
	users UserProvider,
	universities UniversityChecker,
	denylist Denylist,
	opts ...Option,
) *Service {
	s := &Service{
		jwt:          jwt,
		users:        users,
		universities: universities,
		denylist:     denylist,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (resp *RegisterResponse, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Register",
		attribute.String("role", req.Role))
	defer func() { core.EndSpan(span, err) }()

	exists, err := s.universities.Exists(ctx, req.UniversityID)
	if err != nil {
		return nil, fmt.Errorf("check university: %w", err)
	}
	if !exists {
		return nil, ErrUnknownUniversity
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		UniversityID: req.UniversityID,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) || errors.Is(err, ErrUsernameExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.linkMemberships(ctx, user)

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:        user.ID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      toUserResponse(user),
	}, nil
}

// EnsureSuperAdmin creates the seeded super admin unless an account with
// that email already exists. Reruns leave the stored password alone. The
// bool reports whether the account was created.
func (s *Service) EnsureSuperAdmin(
	ctx context.Context,
	seed SuperAdminSeed,
) (*UserResponse, bool, error) {
	email := strings.ToLower(strings.TrimSpace(seed.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != middleware.RoleSuperAdmin {
			return nil, false, fmt.Errorf("seed %s: %w", email, ErrNotSuperAdmin)
		}
		resp := toUserResponse(existing)
		return &resp, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	passwordHash, err := core.HashPassword(seed.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		Username:     strings.TrimSpace(seed.Username),
		Name:         strings.TrimSpace(seed.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         middleware.RoleSuperAdmin,
		UniversityID: seed.UniversityID,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create super admin: %w", err)
	}

	s.logger.InfoContext(ctx, "super admin seeded", "user_id", user.ID)

	resp := toUserResponse(user)
	return &resp, true, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (resp *LoginResponse, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Login")
	defer func() {
		s.metrics.Login(err == nil)
		core.EndSpan(span, err)
	}()

	user, err := s.lookup(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalize timing for unknown identifiers
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	s.linkMemberships(ctx, user)

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:      toUserResponse(user),
		Token:     token.Token,
		TokenType: "Bearer",
		ExpiresIn: int(s.jwt.TokenTTL() / time.Second),
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// linkMemberships claims rso_members rows listed under the user's email.
// It is idempotent and runs on register and on every login.
func (s *Service) linkMemberships(ctx context.Context, user *UserInfo) {
	if s.linker == nil {
		return
	}
	if err := s.linker.LinkMemberships(ctx, user.Email, user.ID); err != nil {
		s.logger.WarnContext(ctx, "link rso memberships failed",
			"user_id", user.ID,
			"error", err,
		)
	}
}

func (s *Service) lookup(ctx context.Context, identifier string) (*UserInfo, error) {
	if strings.Contains(identifier, "@") {
		return s.users.GetByEmail(ctx, strings.ToLower(identifier))
	}
	return s.users.GetByUsername(ctx, identifier)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil || claims.TokenID == "" {
		return fmt.Errorf("logout: %w", core.ErrTokenInvalid)
	}

	ttl := time.Until(claims.ExpiresAt)
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// VerifyAccessToken checks the signature and then the denylist. A
// denylist outage is logged and the token is accepted.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.denylist == nil || claims.TokenID == "" {
		return claims, nil
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.logger.WarnContext(ctx, "denylist unavailable", "error", err)
		return claims, nil
	}
	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) issue(user *UserInfo) (*IssuedToken, error) {
	token, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID:       user.ID,
		Role:         user.Role,
		UniversityID: user.UniversityID,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}
	return token, nil
}
