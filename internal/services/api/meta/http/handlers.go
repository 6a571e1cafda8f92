// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"domamarket/internal/core/version"
	"domamarket/internal/modkit/httpkit"
	"domamarket/internal/modkit/repokit"
	"domamarket/internal/modkit/swaggerkit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Checks are pinged by /ready; a nil entry is reported as skipped
	Checks map[string]repokit.Pinger
	// Order fixes the check order in the payload
	Order []string
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// Docs describes the meta routes under prefix
func Docs(prefix string) []swaggerkit.Op {
	return []swaggerkit.Op{
		{Method: "GET", Path: prefix + "/health", Tag: "Meta", Summary: "Health check"},
		{Method: "GET", Path: prefix + "/ready", Tag: "Meta", Summary: "Readiness probe with dependency checks"},
		{Method: "GET", Path: prefix + "/version", Tag: "Meta", Summary: "Build and version info"},
		{Method: "GET", Path: prefix + "/service", Tag: "Meta", Summary: "Service info and uptime"},
	}
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"doma-api"`
	Started string `json:"started"  example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"doma-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	overall := "ok"
	checks := make([]ReadyCheck, 0, len(h.deps.Order))
	for _, name := range h.deps.Order {
		p := h.deps.Checks[name]
		if p == nil {
			checks = append(checks, ReadyCheck{Name: name, Status: "skipped"})
			continue
		}
		if err := repokit.Ping(ctx, name, p, 0); err != nil {
			overall = "fail"
			checks = append(checks, ReadyCheck{Name: name, Status: "fail", Error: err.Error()})
			continue
		}
		checks = append(checks, ReadyCheck{Name: name, Status: "ok"})
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    h.now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
