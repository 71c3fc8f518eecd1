// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"errors"
	"slices"
	"testing"
)

func visitOf(date string, glucose, cholesterol, bp float64) VisitEntry {
	v := VisitEntry{Date: date}
	if glucose != 0 {
		v.Glucose = NewMeasurement(glucose)
	}
	if cholesterol != 0 {
		v.Cholesterol = NewMeasurement(cholesterol)
	}
	if bp != 0 {
		v.BloodPressure = NewMeasurement(bp)
	}

	return v
}

func TestAnalyzeTrendsAndAbnormalities(t *testing.T) {
	t.Parallel()

	req := Request{
		Reports: []VisitEntry{
			visitOf("2024-03-01", 130, 210, 118),
			visitOf("2024-01-01", 95, 180, 118),
			visitOf("2024-02-01", 110.555, 0, 0),
		},
		PatientInfo: PatientInfo{Name: "Jane Doe", ReportType: "Blood Test"},
	}

	resp, err := NewAnalyzer().Analyze(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Analysis.TotalVisits != 3 {
		t.Fatalf("expected 3 visits, got %d", resp.Analysis.TotalVisits)
	}

	if resp.Analysis.DateRange.Start != "2024-01-01" || resp.Analysis.DateRange.End != "2024-03-01" {
		t.Fatalf("unexpected date range: %#v", resp.Analysis.DateRange)
	}

	glucose, ok := resp.Analysis.Parameters[ParamGlucose]
	if !ok {
		t.Fatal("expected glucose analysis")
	}

	if glucose.Trend.Trend != TrendIncreasing {
		t.Fatalf("expected increasing glucose, got %q", glucose.Trend.Trend)
	}

	if !slices.Equal(glucose.Trend.Values, []float64{95, 110.555, 130}) {
		t.Fatalf("values not sorted by date: %v", glucose.Trend.Values)
	}

	if glucose.Trend.Change != 35 {
		t.Fatalf("expected change 35, got %v", glucose.Trend.Change)
	}

	if glucose.AbnormalCount != 2 || glucose.Abnormalities[0].Status != StatusHigh {
		t.Fatalf("unexpected glucose abnormalities: %#v", glucose.Abnormalities)
	}

	bp := resp.Analysis.Parameters[ParamBloodPressure]
	if bp.Trend.Trend != TrendStable || bp.AbnormalCount != 0 {
		t.Fatalf("unexpected blood pressure analysis: %#v", bp)
	}

	if bp.Abnormalities == nil {
		t.Fatal("expected empty, non-nil abnormalities")
	}

	if !slices.Equal(resp.AbnormalParameters, []Parameter{ParamGlucose, ParamCholesterol}) {
		t.Fatalf("unexpected abnormal parameters: %v", resp.AbnormalParameters)
	}

	if len(resp.Guidance) != 2 {
		t.Fatalf("expected guidance for 2 parameters, got %d", len(resp.Guidance))
	}

	if _, ok := resp.Guidance[ParamBloodPressure]; ok {
		t.Fatal("did not expect guidance for normal blood pressure")
	}

	info := resp.Analysis.PatientInfo
	if info.ID != DefaultValue || info.Age != DefaultValue || info.Gender != DefaultValue {
		t.Fatalf("expected defaults in patient info, got %#v", info)
	}
}

func TestAnalyzeOmitsParametersWithSingleValue(t *testing.T) {
	t.Parallel()

	resp, err := NewAnalyzer().Analyze(Request{
		Reports: []VisitEntry{visitOf("2024-01-01", 50, 0, 0)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Analysis.Parameters) != 0 {
		t.Fatalf("expected no analyzed parameters, got %d", len(resp.Analysis.Parameters))
	}

	if len(resp.AbnormalParameters) != 0 || resp.AbnormalParameters == nil {
		t.Fatalf("expected empty abnormal parameters, got %#v", resp.AbnormalParameters)
	}
}

func TestAnalyzeDecreasingAndLow(t *testing.T) {
	t.Parallel()

	resp, err := NewAnalyzer().Analyze(Request{
		Reports: []VisitEntry{
			visitOf("2024-01-01", 0, 0, 100.256),
			visitOf("2024-02-01", 0, 0, 85.1),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bp := resp.Analysis.Parameters[ParamBloodPressure]
	if bp.Trend.Trend != TrendDecreasing {
		t.Fatalf("expected decreasing, got %q", bp.Trend.Trend)
	}

	if bp.Trend.Change != -15.16 {
		t.Fatalf("expected change -15.16, got %v", bp.Trend.Change)
	}

	if bp.AbnormalCount != 1 || bp.Abnormalities[0].Status != StatusLow || bp.Abnormalities[0].Date != "2024-02-01" {
		t.Fatalf("unexpected abnormalities: %#v", bp.Abnormalities)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "no reports", req: Request{}, want: ErrNoReports},
		{
			name: "no measurements",
			req:  Request{Reports: []VisitEntry{{Date: "2024-01-01"}}},
			want: ErrNoAnalysis,
		},
		{
			name: "bad date",
			req:  Request{Reports: []VisitEntry{visitOf("01/02/2024", 90, 0, 0)}},
			want: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewAnalyzer().Analyze(tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNormalRangeClassify(t *testing.T) {
	t.Parallel()

	r := NormalRange{70, 100}

	tests := []struct {
		value  float64
		status Status
		out    bool
	}{
		{value: 69.9, status: StatusLow, out: true},
		{value: 70, out: false},
		{value: 100, out: false},
		{value: 100.1, status: StatusHigh, out: true},
	}

	for _, tt := range tests {
		status, out := r.Classify(tt.value)
		if status != tt.status || out != tt.out {
			t.Fatalf("Classify(%v) = %q, %v; want %q, %v", tt.value, status, out, tt.status, tt.out)
		}
	}
}

func TestSortParameters(t *testing.T) {
	t.Parallel()

	got := SortParameters([]Parameter{"zinc", ParamBloodPressure, "iron", ParamGlucose})
	want := []Parameter{ParamGlucose, ParamBloodPressure, "iron", "zinc"}

	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
