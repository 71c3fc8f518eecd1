/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

// Parameter names a measured clinical value.
type Parameter string

// Parameter values understood by the analyzer.
const (
	ParamGlucose       Parameter = "glucose"
	ParamCholesterol   Parameter = "cholesterol"
	ParamBloodPressure Parameter = "blood_pressure"
)

// TrendDirection is the directional summary of a parameter across visits.
type TrendDirection string

// TrendDirection values.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Status tells on which side of the normal range a value fell.
type Status string

// Status values.
const (
	StatusLow  Status = "low"
	StatusHigh Status = "high"
)

// DefaultValue is used for optional patient fields left empty.
const DefaultValue = "N/A"

// DateLayout is the wire format of visit dates.
const DateLayout = "2006-01-02"

// VisitEntry is one clinical encounter with optional lab measurements.
type VisitEntry struct {
	Date          string      `json:"date"`
	Glucose       Measurement `json:"glucose,omitzero"`
	Cholesterol   Measurement `json:"cholesterol,omitzero"`
	BloodPressure Measurement `json:"blood_pressure,omitzero"`
}

// HasMeasurement reports whether at least one value is present.
func (v VisitEntry) HasMeasurement() bool {
	return v.Glucose.Valid || v.Cholesterol.Valid || v.BloodPressure.Valid
}

// Measurements returns the present values keyed by parameter.
func (v VisitEntry) Measurements() map[Parameter]float64 {
	values := make(map[Parameter]float64, 3)
	if v.Glucose.Valid {
		values[ParamGlucose] = v.Glucose.Value
	}
	if v.Cholesterol.Valid {
		values[ParamCholesterol] = v.Cholesterol.Value
	}
	if v.BloodPressure.Valid {
		values[ParamBloodPressure] = v.BloodPressure.Value
	}

	return values
}

// PatientInfo carries the patient metadata sent along with the reports.
type PatientInfo struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	ReportType string `json:"report_type"`
}

// WithDefaults fills empty fields with the values the analyzer reports.
func (p PatientInfo) WithDefaults() PatientInfo {
	if p.Name == "" {
		p.Name = "Unknown"
	}
	if p.ID == "" {
		p.ID = DefaultValue
	}
	if p.Age == "" {
		p.Age = DefaultValue
	}
	if p.Gender == "" {
		p.Gender = DefaultValue
	}
	if p.ReportType == "" {
		p.ReportType = "General"
	}

	return p
}

// Request is the body of POST /api/analyze.
type Request struct {
	Reports     []VisitEntry `json:"reports"`
	PatientInfo PatientInfo  `json:"patient_info"`
}

// Trend describes how a parameter moved between the first and last visit.
type Trend struct {
	Trend  TrendDirection `json:"trend"`
	Dates  []string       `json:"dates"`
	Values []float64      `json:"values"`
	Change float64        `json:"change"`
}

// Abnormality is a single visit value outside the normal range.
type Abnormality struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Status Status  `json:"status"`
}

// ParameterAnalysis is the longitudinal summary for one parameter.
type ParameterAnalysis struct {
	NormalRange   NormalRange   `json:"normal_range"`
	Trend         Trend         `json:"trend"`
	Abnormalities []Abnormality `json:"abnormalities"`
	AbnormalCount int           `json:"abnormal_count"`
}

// DateRange spans the first and last analyzed visit.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Analysis is the analysis section of a Response.
type Analysis struct {
	PatientInfo PatientInfo                     `json:"patient_info"`
	TotalVisits int                             `json:"total_visits"`
	DateRange   DateRange                       `json:"date_range"`
	Parameters  map[Parameter]ParameterAnalysis `json:"parameters"`
}

// Guidance holds conservative lifestyle recommendations for a parameter.
type Guidance struct {
	Care  []string `json:"care"`
	Avoid []string `json:"avoid"`
}

// Response is the body returned by POST /api/analyze on success.
type Response struct {
	Analysis           Analysis               `json:"analysis"`
	Guidance           map[Parameter]Guidance `json:"guidance"`
	AbnormalParameters []Parameter            `json:"abnormal_parameters"`
}

// ErrorResponse is the body returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
