// AngelaMos | 2026
// bootstrap.go

// Package bootstrap seeds the first university and its super admin so a
// fresh database can be administered through the API.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/config"
	"github.com/carterperez-dev/uni-events/internal/university"
)

type Universities interface {
	Ensure(ctx context.Context, name, location string) (*university.University, bool, error)
}

type SuperAdmins interface {
	EnsureSuperAdmin(ctx context.Context, seed auth.SuperAdminSeed) (*auth.UserResponse, bool, error)
}

type Result struct {
	UniversityID string
	AdminID      string
}

// Run is safe to call on every start. It returns nil, nil when the
// bootstrap section is not configured.
func Run(
	ctx context.Context,
	cfg config.BootstrapConfig,
	universities Universities,
	admins SuperAdmins,
	logger *slog.Logger,
) (*Result, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	uni, uniCreated, err := universities.Ensure(ctx, cfg.UniversityName, cfg.UniversityLocation)
	if err != nil {
		return nil, fmt.Errorf("bootstrap university: %w", err)
	}

	admin, adminCreated, err := admins.EnsureSuperAdmin(ctx, auth.SuperAdminSeed{
		Username:     cfg.AdminUsername,
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		UniversityID: uni.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap super admin: %w", err)
	}

	logger.InfoContext(ctx, "bootstrap applied",
		"university_id", uni.ID,
		"university_created", uniCreated,
		"admin_id", admin.ID,
		"admin_created", adminCreated,
	)

	return &Result{UniversityID: uni.ID, AdminID: admin.ID}, nil
}
