package config

// defaultHTTPAddress is used when no listen address is configured.
const defaultHTTPAddress = "localhost:8080"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills defaults
// for optional settings.
//
// The database DSN is mandatory: the portal refuses to start without a
// storage backend.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}

	return nil
}
