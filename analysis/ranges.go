/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"slices"
	"strings"
)

// NormalRange is the inclusive [low, high] interval of normal values.
type NormalRange [2]float64

// Low returns the lower bound.
func (r NormalRange) Low() float64 { return r[0] }

// High returns the upper bound.
func (r NormalRange) High() float64 { return r[1] }

// Classify returns the status of a value outside the range, or false when
// the value is within it.
func (r NormalRange) Classify(v float64) (Status, bool) {
	switch {
	case v < r.Low():
		return StatusLow, true
	case v > r.High():
		return StatusHigh, true
	default:
		return "", false
	}
}

// NormalRangeDefinition describes an analyzed parameter and its range.
type NormalRangeDefinition struct {
	Parameter Parameter
	Label     string
	Unit      string
	Range     NormalRange
}

// DefaultNormalRanges returns the analyzed parameters in display order.
// This is the authoritative source of truth for normal ranges.
func DefaultNormalRanges() []NormalRangeDefinition {
	return []NormalRangeDefinition{
		// Fasting plasma glucose
		{Parameter: ParamGlucose, Label: "Glucose", Unit: "mg/dL", Range: NormalRange{70, 100}},
		// Total cholesterol, desirable below 200
		{Parameter: ParamCholesterol, Label: "Cholesterol", Unit: "mg/dL", Range: NormalRange{0, 200}},
		// Systolic only
		{Parameter: ParamBloodPressure, Label: "Blood Pressure - Systolic", Unit: "mmHg", Range: NormalRange{90, 120}},
	}
}

// LookupNormalRange returns the definition for a parameter.
func LookupNormalRange(p Parameter) (NormalRangeDefinition, bool) {
	for _, def := range DefaultNormalRanges() {
		if def.Parameter == p {
			return def, true
		}
	}

	return NormalRangeDefinition{}, false
}

// SortParameters orders parameters by their display order, with unknown
// names last in alphabetical order.
func SortParameters(params []Parameter) []Parameter {
	rank := make(map[Parameter]int)
	for i, def := range DefaultNormalRanges() {
		rank[def.Parameter] = i
	}

	sorted := slices.Clone(params)
	slices.SortStableFunc(sorted, func(a, b Parameter) int {
		ra, okA := rank[a]
		rb, okB := rank[b]

		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(string(a), string(b))
		}
	})

	return sorted
}
