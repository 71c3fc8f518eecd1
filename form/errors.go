/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package form

import (
	"errors"

	"github.com/humaidq/clinitrend/client"
)

// Messages shown in the error region for validation failures.
const (
	MsgMissingName       = "Please enter patient name."
	MsgMissingReportType = "Please select report type."
	MsgNoReports         = "Please enter at least one visit with clinical data."
)

var (
	// ErrMissingName is returned when the patient name is blank.
	ErrMissingName = errors.New("missing patient name")
	// ErrMissingReportType is returned when no report type was selected.
	ErrMissingReportType = errors.New("missing report type")
	// ErrNoReports is returned when no visit carries a date and a measurement.
	ErrNoReports = errors.New("no valid visits")
	// ErrEmptyResponse is returned when the analyzer answered without an
	// analysis or an error.
	ErrEmptyResponse = errors.New(client.FallbackMessage)
)
