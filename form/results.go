/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package form

import (
	"html/template"
	"slices"
	"strconv"
	"strings"

	"github.com/humaidq/clinitrend/analysis"
)

// Results is the rendered form of an analysis response.
type Results struct {
	Summary      Summary
	Parameters   []ParameterCard
	ShowGuidance bool
	Guidance     []GuidanceCard
}

// Summary is the patient block at the top of the results.
type Summary struct {
	ReportType     string
	Name           string
	PatientID      string
	Age            string
	Gender         string
	TotalVisits    int
	DateStart      string
	DateEnd        string
	ParameterCount int
}

// ParameterCard describes one analyzed parameter.
type ParameterCard struct {
	Parameter     analysis.Parameter
	Label         string
	Trend         string
	TrendClass    string
	Values        string
	Change        string
	NormalRange   string
	Abnormalities []AbnormalityRow
	AbnormalCount int
	TotalVisits   int
	Chart         template.HTML
}

// Abnormal reports whether any visit was out of range.
func (p ParameterCard) Abnormal() bool {
	return len(p.Abnormalities) > 0
}

// AbnormalityRow is one out-of-range visit.
type AbnormalityRow struct {
	Date   string
	Value  string
	Status string
}

// GuidanceCard lists what to do and avoid for an abnormal parameter.
type GuidanceCard struct {
	Parameter analysis.Parameter
	Label     string
	Care      []string
	Avoid     []string
}

// NewResults builds the results view of an analysis response. Charts are
// rendered only when withCharts is set. A nil response has no view.
func NewResults(resp *analysis.Response, withCharts bool) *Results {
	if resp == nil {
		return nil
	}

	a := resp.Analysis

	results := &Results{
		Summary: Summary{
			ReportType:     a.PatientInfo.ReportType,
			Name:           a.PatientInfo.Name,
			PatientID:      a.PatientInfo.ID,
			Age:            a.PatientInfo.Age,
			Gender:         a.PatientInfo.Gender,
			TotalVisits:    a.TotalVisits,
			DateStart:      a.DateRange.Start,
			DateEnd:        a.DateRange.End,
			ParameterCount: len(a.Parameters),
		},
	}

	for _, name := range sortedKeys(a.Parameters) {
		info := a.Parameters[name]

		card := ParameterCard{
			Parameter:     name,
			Label:         parameterLabel(name),
			Trend:         strings.ToUpper(string(info.Trend.Trend)),
			TrendClass:    "trend-" + string(info.Trend.Trend),
			Values:        joinValues(info.Trend.Values),
			Change:        signed(info.Trend.Change),
			NormalRange:   formatNumber(info.NormalRange.Low()) + " - " + formatNumber(info.NormalRange.High()),
			AbnormalCount: info.AbnormalCount,
			TotalVisits:   a.TotalVisits,
		}

		for _, abn := range info.Abnormalities {
			card.Abnormalities = append(card.Abnormalities, AbnormalityRow{
				Date:   abn.Date,
				Value:  formatNumber(abn.Value),
				Status: string(abn.Status),
			})
		}

		if withCharts {
			chart, err := renderTrendChart(card.Label, info)
			if err != nil {
				logger.Warn("failed to render trend chart", "parameter", name, "error", err)
			} else {
				card.Chart = chart
			}
		}

		results.Parameters = append(results.Parameters, card)
	}

	if len(resp.AbnormalParameters) > 0 {
		results.ShowGuidance = true

		for _, name := range sortedKeys(resp.Guidance) {
			tips := resp.Guidance[name]
			results.Guidance = append(results.Guidance, GuidanceCard{
				Parameter: name,
				Label:     parameterLabel(name),
				Care:      slices.Clone(tips.Care),
				Avoid:     slices.Clone(tips.Avoid),
			})
		}
	}

	return results
}

func sortedKeys[V any](m map[analysis.Parameter]V) []analysis.Parameter {
	keys := make([]analysis.Parameter, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return analysis.SortParameters(keys)
}

func parameterLabel(p analysis.Parameter) string {
	if def, ok := analysis.LookupNormalRange(p); ok {
		return def.Label
	}

	return string(p)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}

	return strings.Join(parts, " → ")
}

func signed(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}

	return formatNumber(v)
}
