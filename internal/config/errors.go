// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

// Validation errors returned from config building. Each names one required
// field that no configuration source provided.
var (
	ErrNoServerAddress       = errors.New("no server address provided")
	ErrNoDatabaseDSN         = errors.New("no database DSN provided")
	ErrNoTokenSignKey        = errors.New("no token sign key provided")
	ErrNoTokenDuration       = errors.New("no token duration provided")
	ErrNoServerURL           = errors.New("no server URL provided")
	ErrNoFetchTimeout        = errors.New("no fetch timeout provided")
	ErrNoSessionPollInterval = errors.New("no session poll interval provided")
)
