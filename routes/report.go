/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/clinitrend/analysis"
	"github.com/humaidq/clinitrend/db"
	"github.com/humaidq/clinitrend/form"
)

// ReportTypes are the choices offered by the report type select.
var ReportTypes = []string{
	"Blood Test",
	"Lipid Profile",
	"Diabetes Panel",
	"Cardiac Checkup",
	"General Checkup",
}

// Genders are the choices offered by the gender select.
var Genders = []string{"Male", "Female", "Other"}

// ParameterField pairs a visit input with its label.
type ParameterField struct {
	Field       string
	Label       string
	Placeholder string
}

// visitParameterFields returns the measurement inputs of a visit block.
func visitParameterFields() []ParameterField {
	placeholders := map[analysis.Parameter]string{
		analysis.ParamGlucose:       "e.g., 110",
		analysis.ParamCholesterol:   "e.g., 200",
		analysis.ParamBloodPressure: "e.g., 120",
	}
	fields := map[analysis.Parameter]string{
		analysis.ParamGlucose:       form.FieldGlucose,
		analysis.ParamCholesterol:   form.FieldCholesterol,
		analysis.ParamBloodPressure: form.FieldBloodPressure,
	}

	var out []ParameterField
	for _, def := range analysis.DefaultNormalRanges() {
		out = append(out, ParameterField{
			Field:       fields[def.Parameter],
			Label:       def.Label + " (" + def.Unit + ")",
			Placeholder: placeholders[def.Parameter],
		})
	}

	return out
}

func controllerFor(reg *form.Registry, s session.Session) *form.Controller {
	return reg.Get(s.ID())
}

func renderReportForm(t template.Template, data template.Data, ctrl *form.Controller, status int) {
	data["IsReport"] = true
	data["View"] = ctrl.View()
	data["ReportTypes"] = ReportTypes
	data["Genders"] = Genders
	data["ParameterFields"] = visitParameterFields()
	data["HistoryEnabled"] = db.Enabled()
	t.HTML(status, "index")
}

// applyPostedInput parses the posted form into the controller. On failure
// the error region is set and false is returned.
func applyPostedInput(c flamego.Context, ctrl *form.Controller) bool {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("failed to parse form", "error", err)
		ctrl.ShowError("Failed to parse form data")

		return false
	}

	ctrl.ApplyInput(c.Request().Form)

	return true
}

// ReportForm renders the report form for the current session
func ReportForm(t template.Template, data template.Data, s session.Session, reg *form.Registry) {
	renderReportForm(t, data, controllerFor(reg, s), http.StatusOK)
}

// AddVisit keeps the typed values and appends a visit block
func AddVisit(c flamego.Context, s session.Session, reg *form.Registry) {
	ctrl := controllerFor(reg, s)
	if applyPostedInput(c, ctrl) {
		id := ctrl.AddVisitForm()
		c.Redirect("/#visit-"+strconv.Itoa(id), http.StatusSeeOther)

		return
	}

	c.Redirect("/", http.StatusSeeOther)
}

// RemoveVisit keeps the typed values and removes a visit block
func RemoveVisit(c flamego.Context, s session.Session, reg *form.Registry) {
	ctrl := controllerFor(reg, s)

	id, err := parseVisitID(c.Param("id"))
	if err != nil {
		SetErrorFlash(s, "Invalid visit")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	if applyPostedInput(c, ctrl) {
		ctrl.RemoveVisit(id)
	}

	c.Redirect("/", http.StatusSeeOther)
}

// ResetReport discards the session's form and starts over
func ResetReport(c flamego.Context, s session.Session, reg *form.Registry) {
	reg.Reset(s.ID())
	SetInfoFlash(s, "Form cleared")
	c.Redirect("/", http.StatusSeeOther)
}

// AnalyzeReports validates the form, calls the analysis endpoint and shows
// the outcome on the form page
func AnalyzeReports(c flamego.Context, s session.Session, reg *form.Registry) {
	ctrl := controllerFor(reg, s)
	if !applyPostedInput(c, ctrl) {
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	err := ctrl.AnalyzeReports(c.Request().Context())

	switch {
	case err == nil:
		c.Redirect("/#results", http.StatusSeeOther)
		return
	case errors.Is(err, form.ErrMissingName),
		errors.Is(err, form.ErrMissingReportType),
		errors.Is(err, form.ErrNoReports):
		logger.Debug("report form rejected", "reason", err)
	default:
		logger.Warn("analysis request failed", "error", err)
	}

	c.Redirect("/#error", http.StatusSeeOther)
}

func parseVisitID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errInvalidVisitID
	}

	return id, nil
}
