// Package config loads the service configuration from a YAML file.
//
// Values may reference environment variables with ${VAR} syntax; referenced
// variables must be set or loading fails, so a missing secret is caught at
// start-up rather than at first use.
package config
