// Package config loads streamkit diagnostics configuration from YAML files
// and environment variables.
//
// Loading order: config.yml (if found), then .env (if found), then process
// environment variables. Later sources win.
//
//	var cfg config.DiagnosticsConfig
//	if err := config.Load("my-service", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
