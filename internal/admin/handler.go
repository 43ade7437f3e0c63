// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/rso"
)

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type RSOCounter interface {
	Counts(ctx context.Context) (rso.Counts, error)
}

type Handler struct {
	dbStats      func() sql.DBStats
	redisStats   func() *redis.PoolStats
	redisPing    func(ctx context.Context) error
	dbPing       func(ctx context.Context) error
	users        Counter
	universities Counter
	events       Counter
	comments     Counter
	rsos         RSOCounter
	logger       *slog.Logger
}

type HandlerConfig struct {
	DBStats      func() sql.DBStats
	RedisStats   func() *redis.PoolStats
	RedisPing    func(ctx context.Context) error
	DBPing       func(ctx context.Context) error
	Users        Counter
	Universities Counter
	Events       Counter
	Comments     Counter
	RSOs         RSOCounter
	Logger       *slog.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		dbStats:      cfg.DBStats,
		redisStats:   cfg.RedisStats,
		redisPing:    cfg.RedisPing,
		dbPing:       cfg.DBPing,
		users:        cfg.Users,
		universities: cfg.Universities,
		events:       cfg.Events,
		comments:     cfg.Comments,
		rsos:         cfg.RSOs,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, superAdminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(superAdminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
		r.Get("/stats/campus", h.GetCampusStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campus, err := h.campusStats(ctx)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	response := SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: ping(ctx, h.dbPing),
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: ping(ctx, h.redisPing),
			Stats:   h.getRedisStats(),
		},
		Runtime: runtimeStats(),
		Campus:  campus,
	}

	core.OK(w, response)
}

func (h *Handler) GetCampusStats(w http.ResponseWriter, r *http.Request) {
	campus, err := h.campusStats(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}
	core.OK(w, campus)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, runtimeStats())
}

func ping(ctx context.Context, fn func(ctx context.Context) error) bool {
	if fn == nil {
		return false
	}
	return fn(ctx) == nil
}

func (h *Handler) campusStats(ctx context.Context) (*CampusStats, error) {
	stats := &CampusStats{}
	g, ctx := errgroup.WithContext(ctx)

	count := func(c Counter, dst *int) {
		if c == nil {
			return
		}
		g.Go(func() error {
			n, err := c.Count(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(h.users, &stats.Users)
	count(h.universities, &stats.Universities)
	count(h.events, &stats.Events)
	count(h.comments, &stats.Comments)

	if h.rsos != nil {
		g.Go(func() error {
			c, err := h.rsos.Counts(ctx)
			if err != nil {
				return err
			}
			stats.RSOs = c.Total
			stats.PendingRSOs = c.Pending
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(ctx, "collect campus stats failed", "error", err)
		return nil, err
	}
	return stats, nil
}

func runtimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
	Campus   *CampusStats   `json:"campus"`
}

type CampusStats struct {
	Universities int `json:"universities"`
	Users        int `json:"users"`
	Events       int `json:"events"`
	Comments     int `json:"comments"`
	RSOs         int `json:"rsos"`
	PendingRSOs  int `json:"pending_rsos"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
