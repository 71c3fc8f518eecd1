/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errInvalidVisitID = errors.New("invalid visit id")
	errBodyTooLarge   = errors.New("request body too large")
)
