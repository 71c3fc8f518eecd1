/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Analyzer performs longitudinal analysis over a patient's visits.
type Analyzer struct {
	ranges   []NormalRangeDefinition
	guidance map[Parameter]Guidance
}

// NewAnalyzer returns an analyzer using the default ranges and guidance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		ranges:   DefaultNormalRanges(),
		guidance: DefaultGuidance(),
	}
}

type visit struct {
	date   time.Time
	values map[Parameter]float64
}

// Analyze computes trends, abnormalities and guidance for a request.
func (a *Analyzer) Analyze(req Request) (*Response, error) {
	if len(req.Reports) == 0 {
		return nil, ErrNoReports
	}

	visits := make([]visit, 0, len(req.Reports))
	for _, report := range req.Reports {
		values := report.Measurements()
		if len(values) == 0 {
			continue
		}

		date, err := parseVisitDate(report.Date)
		if err != nil {
			return nil, err
		}

		visits = append(visits, visit{date: date, values: values})
	}

	if len(visits) == 0 {
		return nil, ErrNoAnalysis
	}

	slices.SortStableFunc(visits, func(x, y visit) int {
		return x.date.Compare(y.date)
	})

	result := Analysis{
		PatientInfo: req.PatientInfo.WithDefaults(),
		TotalVisits: len(visits),
		DateRange: DateRange{
			Start: visits[0].date.Format(DateLayout),
			End:   visits[len(visits)-1].date.Format(DateLayout),
		},
		Parameters: make(map[Parameter]ParameterAnalysis),
	}

	abnormal := make([]Parameter, 0)
	guidance := make(map[Parameter]Guidance)

	for _, def := range a.ranges {
		trend, ok := identifyTrend(visits, def.Parameter)
		if !ok {
			continue
		}

		abnormalities := detectAbnormalities(visits, def.Parameter, def.Range)
		result.Parameters[def.Parameter] = ParameterAnalysis{
			NormalRange:   def.Range,
			Trend:         trend,
			Abnormalities: abnormalities,
			AbnormalCount: len(abnormalities),
		}

		if len(abnormalities) > 0 {
			abnormal = append(abnormal, def.Parameter)
			if g, ok := a.guidance[def.Parameter]; ok {
				guidance[def.Parameter] = g
			}
		}
	}

	return &Response{
		Analysis:           result,
		Guidance:           guidance,
		AbnormalParameters: abnormal,
	}, nil
}

// identifyTrend needs at least two values for the parameter.
func identifyTrend(visits []visit, p Parameter) (Trend, bool) {
	var dates []string
	var values []float64

	for _, v := range visits {
		if value, ok := v.values[p]; ok {
			dates = append(dates, v.date.Format(DateLayout))
			values = append(values, value)
		}
	}

	if len(values) < 2 {
		return Trend{}, false
	}

	first, last := values[0], values[len(values)-1]

	direction := TrendStable
	switch {
	case last > first:
		direction = TrendIncreasing
	case last < first:
		direction = TrendDecreasing
	}

	return Trend{
		Trend:  direction,
		Dates:  dates,
		Values: values,
		Change: roundTo(last-first, 2),
	}, true
}

func detectAbnormalities(visits []visit, p Parameter, r NormalRange) []Abnormality {
	abnormalities := make([]Abnormality, 0)

	for _, v := range visits {
		value, ok := v.values[p]
		if !ok {
			continue
		}

		if status, out := r.Classify(value); out {
			abnormalities = append(abnormalities, Abnormality{
				Date:   v.date.Format(DateLayout),
				Value:  value,
				Status: status,
			})
		}
	}

	return abnormalities
}

// parseVisitDate accepts plain dates as well as full timestamps.
func parseVisitDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
