// Package config loads, normalizes, and validates seed-to-stream
// configuration from TOML. Loading starts from repository defaults, layers
// the config file on top, expands paths, applies environment-variable
// overrides for secrets, and validates the result.
package config
