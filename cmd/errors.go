/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errCSRFSecretRequired  = errors.New("CSRF_SECRET is required in production")
	errInvalidRuntimeEnv   = errors.New(runtimeEnvVar + " must be one of: development, dev, production, prod")
	errInputRequired       = errors.New("input file is required (use - for stdin)")
)
