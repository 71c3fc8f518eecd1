/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package form

import (
	"strconv"
	"strings"

	"github.com/humaidq/clinitrend/analysis"
)

// Input names of the patient fields.
const (
	FieldPatientName   = "patient_name"
	FieldPatientID     = "patient_id"
	FieldPatientAge    = "patient_age"
	FieldPatientGender = "patient_gender"
	FieldReportType    = "report_type"
)

// Per-visit input names, combined with the visit id by VisitForm.Field.
const (
	FieldDate          = "date"
	FieldGlucose       = "glucose"
	FieldCholesterol   = "cholesterol"
	FieldBloodPressure = "bp"
)

// VisitForm is the state of one visit input block. Values hold the raw
// input so that redisplay shows exactly what the user typed.
type VisitForm struct {
	ID            int
	Date          string
	Glucose       string
	Cholesterol   string
	BloodPressure string
	Removable     bool
}

// Field returns the input name for one of the visit's fields.
func (v VisitForm) Field(name string) string {
	return "visit-" + strconv.Itoa(v.ID) + "-" + name
}

// Value returns the raw input of one of the visit's fields.
func (v VisitForm) Value(name string) string {
	switch name {
	case FieldDate:
		return v.Date
	case FieldGlucose:
		return v.Glucose
	case FieldCholesterol:
		return v.Cholesterol
	case FieldBloodPressure:
		return v.BloodPressure
	default:
		return ""
	}
}

// Entry converts the block into a VisitEntry. It returns false when the
// block lacks a date or all three measurements; unparseable numbers count
// as absent.
func (v VisitForm) Entry() (analysis.VisitEntry, bool) {
	date := strings.TrimSpace(v.Date)
	if date == "" {
		return analysis.VisitEntry{}, false
	}

	entry := analysis.VisitEntry{Date: date}
	entry.Glucose, _ = analysis.ParseMeasurement(v.Glucose)
	entry.Cholesterol, _ = analysis.ParseMeasurement(v.Cholesterol)
	entry.BloodPressure, _ = analysis.ParseMeasurement(v.BloodPressure)

	if !entry.HasMeasurement() {
		return analysis.VisitEntry{}, false
	}

	return entry, true
}

// PatientFields holds the raw patient inputs.
type PatientFields struct {
	Name       string
	ID         string
	Age        string
	Gender     string
	ReportType string
}

// Info converts the inputs into PatientInfo, defaulting optional fields.
func (p PatientFields) Info() analysis.PatientInfo {
	return analysis.PatientInfo{
		Name:       strings.TrimSpace(p.Name),
		ID:         orDefault(strings.TrimSpace(p.ID)),
		Age:        orDefault(strings.TrimSpace(p.Age)),
		Gender:     orDefault(p.Gender),
		ReportType: p.ReportType,
	}
}

func orDefault(s string) string {
	if s == "" {
		return analysis.DefaultValue
	}

	return s
}

// idGenerator hands out visit identifiers. It never resets.
type idGenerator struct {
	last int
}

func (g *idGenerator) next() int {
	g.last++
	return g.last
}
