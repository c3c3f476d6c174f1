package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays variables that are present in the environment; unset
// variables leave the current values alone. Malformed values panic, like
// malformed flags do.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
