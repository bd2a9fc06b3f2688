// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, overridden from the environment,
// and validated using struct tags. Defaults keep the service runnable with an
// empty file: one-second ticks played back in real time.
package config
