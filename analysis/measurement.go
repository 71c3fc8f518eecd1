/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Measurement is an optional decimal lab value. On the wire it is a JSON
// number; numeric strings are accepted and an empty string means absent.
type Measurement struct {
	Value float64
	Valid bool
}

// NewMeasurement returns a present measurement.
func NewMeasurement(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// ParseMeasurement parses raw form input. Blank input yields an absent
// measurement and no error.
func ParseMeasurement(raw string) (Measurement, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Measurement{}, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Measurement{}, fmt.Errorf("%w: %q", errInvalidMeasurement, raw)
	}

	return NewMeasurement(v), nil
}

// IsZero reports whether the measurement is absent.
func (m Measurement) IsZero() bool {
	return !m.Valid
}

// MarshalJSON implements json.Marshaler.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(m.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*m = Measurement{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		parsed, err := ParseMeasurement(raw)
		if err != nil {
			return err
		}

		*m = parsed

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", errInvalidMeasurement, data)
	}

	*m = NewMeasurement(v)

	return nil
}
