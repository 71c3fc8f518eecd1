/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "errors"

var (
	// ErrNoReports is returned when a request carries no visit reports.
	ErrNoReports = errors.New("No reports provided") //nolint:staticcheck // Message is part of the API contract.
	// ErrNoAnalysis is returned when no report carries any measurement.
	ErrNoAnalysis = errors.New("Unable to generate analysis") //nolint:staticcheck // Message is part of the API contract.
	// ErrInvalidDate is returned when a visit date cannot be parsed.
	ErrInvalidDate = errors.New("invalid visit date")

	errInvalidMeasurement = errors.New("invalid measurement")
)
