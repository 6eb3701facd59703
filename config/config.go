// Package config reads the ClouDNS credentials and runtime flags from the
// process environment. Values are read at call time so tests (and callers
// that manage their own environment) can change them between calls.
package config

import (
	"errors"
	"os"
	"strings"
)

// Environment variables recognized by the library.
const (
	EnvAuthID       = "CLOUDNS_API_AUTH_ID"
	EnvSubAuthID    = "CLOUDNS_API_SUB_AUTH_ID"
	EnvSubAuthUser  = "CLOUDNS_API_SUB_AUTH_USER"
	EnvAuthPassword = "CLOUDNS_API_AUTH_PASSWORD"
	EnvDebug        = "CLOUDNS_API_DEBUG"
	EnvTesting      = "CLOUDNS_API_TESTING"
)

var (
	ErrMissingAuthPassword = errors.New(`environment variable "` + EnvAuthPassword + `" not set`)
	ErrMissingAuthID       = errors.New(`no environment variable "` + EnvAuthID + `", "` +
		EnvSubAuthID + `" or "` + EnvSubAuthUser + `" is set`)
)

// AuthID returns the primary account id.
func AuthID() string { return os.Getenv(EnvAuthID) }

// SubAuthID returns the sub-account id.
func SubAuthID() string { return os.Getenv(EnvSubAuthID) }

// SubAuthUser returns the sub-account username.
func SubAuthUser() string { return os.Getenv(EnvSubAuthUser) }

// AuthPassword returns the API password.
func AuthPassword() string { return os.Getenv(EnvAuthPassword) }

// Debug reports whether debug mode is enabled. In debug mode generic error
// messages in response envelopes are replaced with the underlying failure's
// own message.
func Debug() bool { return isTruthy(os.Getenv(EnvDebug)) }

// Testing reports whether testing mode is enabled. Testing mode relaxes the
// credential requirements so parameter handling can be exercised without a
// ClouDNS account.
func Testing() bool { return isTruthy(os.Getenv(EnvTesting)) }

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
