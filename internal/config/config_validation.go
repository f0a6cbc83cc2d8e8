package config

import "errors"

// validateServer checks the fields the server cannot start without.
func (c *StructuredConfig) validateServer() error {
	var errs []error

	if c.Server.HTTPAddress == "" {
		errs = append(errs, ErrNoServerAddress)
	}
	if c.Storage.DB.DSN == "" {
		errs = append(errs, ErrNoDatabaseDSN)
	}
	if c.App.TokenSignKey == "" {
		errs = append(errs, ErrNoTokenSignKey)
	}
	if c.App.TokenDuration <= 0 {
		errs = append(errs, ErrNoTokenDuration)
	}

	return errors.Join(errs...)
}

// validateClient checks the fields the CLI client cannot start without.
func (c *StructuredConfig) validateClient() error {
	var errs []error

	if c.Client.ServerURL == "" {
		errs = append(errs, ErrNoServerURL)
	}
	if c.Client.FetchTimeout <= 0 {
		errs = append(errs, ErrNoFetchTimeout)
	}
	if c.Client.SessionPollInterval <= 0 {
		errs = append(errs, ErrNoSessionPollInterval)
	}

	return errors.Join(errs...)
}
