// Package ratelimit throttles the endpoints that accept guessable secrets:
// verification tokens and face descriptors.
package ratelimit

import (
	"strings"
	"time"
)

// Class groups endpoints that share a limit.
type Class string

const (
	// ClassVerification covers nominee token redemption.
	ClassVerification Class = "verification"
	// ClassBiometric covers face verify, login and enrollment.
	ClassBiometric Class = "biometric"
	// ClassWrite covers registrations and uploads.
	ClassWrite Class = "write"
)

// Limit is the number of requests allowed per client within Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result is the outcome of one check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"`
}

// Key builds the bucket key for a client and class. Delimiters in the
// client segment are escaped so one client cannot address another's bucket.
func Key(class Class, client string) string {
	return "rl:" + string(class) + ":" + strings.ReplaceAll(client, ":", "_")
}
