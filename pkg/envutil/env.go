/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package envutil resolves configuration defaults from the environment.
package envutil

import "os"

// GetString returns the environment variable value if set and non-empty, otherwise returns the default value.
func GetString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBool returns the environment variable value as bool if set, otherwise returns the default value.
// Accepts "true", "1" as true values, everything else is false.
func GetBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
