// Copyright 2026 The Collisionmap Authors
// SPDX-License-Identifier: MIT

// Package redact strips sensitive values from strings before they appear
// in logs, error messages, or rendered pages.
package redact

import (
	"os"
	"regexp"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"MAPBOX_TOKEN",
	"MAPBOX_ACCESS_TOKEN",
	"COLLISIONMAP_TOKEN",
	"COLLISIONMAP_MAPBOX_TOKEN",
}

// tokenParam matches credential-looking query parameters in source and tile URLs.
var tokenParam = regexp.MustCompile(`(?i)\b(access_token|api_key|apikey|token)=([^&\s"']+)`)

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces known secret values and credential query parameters
// with "[REDACTED]".
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return tokenParam.ReplaceAllString(s, "$1=[REDACTED]")
}
