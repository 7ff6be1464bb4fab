// Package config loads the application configuration from a JSON file
// layered over built-in defaults, with FLASHBAR_* environment variables
// taking the highest precedence.
package config
