package config

// validate checks the merged config before startup uses it.
func (cfg *Config) validate() error {
	if cfg.App.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if cfg.Storage.DatabaseURL == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.Address == "" {
		return ErrInvalidServerConfigs
	}
	for _, id := range cfg.App.AdminIDs {
		if id == 0 {
			return ErrInvalidAdminIDs
		}
	}
	return nil
}
