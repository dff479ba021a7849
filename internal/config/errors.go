package config

import "errors"

// Validation errors returned by [Config.validate].
var (
	// ErrMissingSecretKey means APP_SECRET_KEY was not provided; sessions
	// cannot be signed without it.
	ErrMissingSecretKey = errors.New("missing session secret key")
	// ErrInvalidStorageConfigs indicates an empty database url.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates an empty listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdminIDs indicates a zero id in APP_ADMIN_IDS.
	ErrInvalidAdminIDs = errors.New("invalid admin ids")
)
