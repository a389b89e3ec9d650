package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fruitfarm/pkg/plantation/repository"
)

const (
	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	reg repository.Registry
}

func NewHealthCtrl(db *gorm.DB, reg repository.Registry) *HealthCtrl {
	return &HealthCtrl{db: db, reg: reg}
}

type check struct {
	OK    bool   `json:"ok"`
	Err   string `json:"err,omitempty"`
	Count *int   `json:"count,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) readRegistry(ctx context.Context) check {
	if h.reg == nil {
		return check{Err: "no plantation registry"}
	}
	snap := h.reg.ReadAll(ctx)
	n := len(snap.Plantations)
	if snap.Warning != nil {
		return check{Err: snap.Warning.Error(), Count: &n}
	}
	return check{OK: true, Count: &n}
}

// Health fails only when the database is down. A degraded registry still
// serves what it could read, so it downgrades the status without a 503.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	reg := h.readRegistry(ctx)

	state, code := StatusOK, http.StatusOK
	switch {
	case !db.OK:
		state, code = StatusUnavailable, http.StatusServiceUnavailable
	case !reg.OK:
		state = StatusDegraded
	}

	return c.JSON(code, map[string]any{
		"status":     state,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]check{
			"database":    db,
			"plantations": reg,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
