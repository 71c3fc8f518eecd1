/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/clinitrend/db"
	"github.com/humaidq/clinitrend/form"
)

func renderNotFound(t template.Template, data template.Data, message string) {
	data["Error"] = message
	t.HTML(http.StatusNotFound, "error")
}

// historyLimit parses the limit query, falling back to the default and
// capping it at db.MaxHistoryLimit.
func historyLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return db.DefaultHistoryLimit
	}

	return min(limit, db.MaxHistoryLimit)
}

// History lists recorded analysis runs
func History(c flamego.Context, t template.Template, data template.Data) {
	if !db.Enabled() {
		renderNotFound(t, data, "History is not enabled")
		return
	}

	limit := historyLimit(c.Query("limit"))

	data["IsHistory"] = true

	runs, err := db.ListAnalysisRuns(c.Request().Context(), limit)
	if err != nil {
		logger.Error("failed to list analysis runs", "error", err)
		data["Error"] = "Failed to load history"
	} else {
		data["Runs"] = runs
	}

	t.HTML(http.StatusOK, "history")
}

// ViewRun shows a recorded analysis run with its results
func ViewRun(c flamego.Context, t template.Template, data template.Data) {
	if !db.Enabled() {
		renderNotFound(t, data, "History is not enabled")
		return
	}

	run, err := db.GetAnalysisRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrAnalysisRunNotFound) {
			renderNotFound(t, data, "Analysis run not found")
			return
		}

		logger.Error("failed to load analysis run", "id", c.Param("id"), "error", err)
		data["Error"] = "Failed to load analysis run"
		t.HTML(http.StatusInternalServerError, "error")

		return
	}

	data["IsHistory"] = true
	data["Run"] = run
	data["Results"] = form.NewResults(&run.Response, true)
	t.HTML(http.StatusOK, "history_view")
}

// LoadRun copies a recorded request into the session's report form
func LoadRun(c flamego.Context, s session.Session, reg *form.Registry) {
	if !db.Enabled() {
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	run, err := db.GetAnalysisRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.Warn("failed to load analysis run into form", "id", c.Param("id"), "error", err)
		SetErrorFlash(s, "Analysis run not found")
		c.Redirect("/history", http.StatusSeeOther)

		return
	}

	loaded, skipped := controllerFor(reg, s).LoadRequest(run.Request)

	switch {
	case loaded == 0:
		SetWarningFlash(s, "Analysis run has no visits to load")
		c.Redirect("/history", http.StatusSeeOther)

		return
	case skipped > 0:
		SetWarningFlash(s, fmt.Sprintf("Loaded %d visits for %s, skipped %d without data", loaded, run.PatientName, skipped))
	default:
		SetSuccessFlash(s, "Loaded visits for "+run.PatientName)
	}

	c.Redirect("/", http.StatusSeeOther)
}

// DeleteRun removes a recorded analysis run
func DeleteRun(c flamego.Context, s session.Session) {
	if !db.Enabled() {
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	if err := db.DeleteAnalysisRun(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, db.ErrAnalysisRunNotFound) {
			SetErrorFlash(s, "Analysis run not found")
		} else {
			logger.Error("failed to delete analysis run", "id", c.Param("id"), "error", err)
			SetErrorFlash(s, "Failed to delete analysis run")
		}

		c.Redirect("/history", http.StatusSeeOther)

		return
	}

	SetSuccessFlash(s, "Analysis run deleted")
	c.Redirect("/history", http.StatusSeeOther)
}
