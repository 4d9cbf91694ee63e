// Package config loads and merges crosscheck configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CROSSCHECK_REMOTE, CROSSCHECK_FORMAT,
//     CROSSCHECK_TIMEOUT, GITHUB_TOKEN, GITHUB_API_URL)
//  3. Config file ($XDG_CONFIG_HOME/crosscheck/config.json)
//  4. Built-in defaults
//
// The access token is read from the environment or flags only and is never
// persisted to the config file.
package config
