package scheduler

import (
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

// Action is one guarded operation category subject to a rate limit.
type Action int

const (
	FileWrite Action = iota
	NetworkRequest
	ProcessSpawn
)

// SafetyConstraints bounds what autonomous tasks are allowed to touch:
// a directory allow-list, a process deny-list, and CPU/memory ceilings,
// mirroring the fixed defaults the scheduler was modeled on. The
// per-action rate limits are held separately, in RateLimiters.
type SafetyConstraints struct {
	ForbiddenProcesses []string
	AllowedDirectories []string
	MaxCPUPercent      float64
	MaxMemoryMB        int
}

// DefaultSafetyConstraints returns the fixed deny-list/allow-list the
// scheduler ships with.
func DefaultSafetyConstraints() SafetyConstraints {
	return SafetyConstraints{
		ForbiddenProcesses: []string{"systemd", "init", "kernel", "ssh", "sudo"},
		AllowedDirectories: []string{"/tmp", "./workspace", "./knowledge"},
		MaxCPUPercent:      50.0,
		MaxMemoryMB:        2048,
	}
}

// IsDirectoryAllowed reports whether path falls under one of the
// allow-listed directory prefixes.
func (c SafetyConstraints) IsDirectoryAllowed(path string) bool {
	for _, dir := range c.AllowedDirectories {
		if strings.HasPrefix(path, dir) {
			return true
		}
	}
	return false
}

// IsProcessForbidden reports whether name matches a deny-listed process.
func (c SafetyConstraints) IsProcessForbidden(name string) bool {
	for _, forbidden := range c.ForbiddenProcesses {
		if name == forbidden {
			return true
		}
	}
	return false
}

// ErrRateLimited is returned when an action exceeds its per-minute
// budget.
var ErrRateLimited = fmt.Errorf("scheduler: action rate-limited")

// ErrSafetyViolation signals that the configured constraints are
// internally unsafe — an empty deny-list, a non-positive resource
// ceiling, or no allowed directories at all — and must not be loaded.
var ErrSafetyViolation = fmt.Errorf("scheduler: safety constraints violate the safety predicate")

// Validate checks that c describes a usable safety envelope: at least one
// allowed directory, at least one forbidden process, and positive
// resource ceilings. It is called once at startup so a misconfigured
// deployment fails fast with ErrSafetyViolation rather than silently
// running unconstrained.
func (c SafetyConstraints) Validate() error {
	if len(c.AllowedDirectories) == 0 {
		return fmt.Errorf("%w: no allowed directories configured", ErrSafetyViolation)
	}
	if len(c.ForbiddenProcesses) == 0 {
		return fmt.Errorf("%w: no forbidden processes configured", ErrSafetyViolation)
	}
	if c.MaxCPUPercent <= 0 || c.MaxCPUPercent > 100 {
		return fmt.Errorf("%w: max CPU percent %.1f out of range", ErrSafetyViolation, c.MaxCPUPercent)
	}
	if c.MaxMemoryMB <= 0 {
		return fmt.Errorf("%w: max memory MB %d must be positive", ErrSafetyViolation, c.MaxMemoryMB)
	}
	return nil
}

// RateLimiters bundles the three per-action rolling-window limiters the
// scheduler enforces: file writes, network requests, and process spawns,
// each capped at a fixed per-minute budget.
type RateLimiters struct {
	limiters map[Action]*rate.Limiter
}

// NewRateLimiters builds limiters at the fixed per-minute budgets: 60
// file writes, 120 network requests, 10 process spawns.
func NewRateLimiters() *RateLimiters {
	perMinute := func(n int) *rate.Limiter {
		return rate.NewLimiter(rate.Limit(float64(n)/60.0), n)
	}
	return &RateLimiters{limiters: map[Action]*rate.Limiter{
		FileWrite:      perMinute(60),
		NetworkRequest: perMinute(120),
		ProcessSpawn:   perMinute(10),
	}}
}

// Allow reports whether action may proceed right now, consuming one
// token from its bucket if so.
func (r *RateLimiters) Allow(action Action) bool {
	limiter, ok := r.limiters[action]
	if !ok {
		return true
	}
	return limiter.Allow()
}
