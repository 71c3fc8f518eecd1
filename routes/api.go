/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/clinitrend/analysis"
	"github.com/humaidq/clinitrend/db"
)

const maxRequestBody = 1 << 20

// AnalyzeAPI runs the longitudinal analysis on a JSON request
func AnalyzeAPI(c flamego.Context, analyzer *analysis.Analyzer) {
	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Body().ReadCloser(), maxRequestBody)

	var req analysis.Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(c, http.StatusRequestEntityTooLarge, errBodyTooLarge.Error())
			return
		}

		logger.Debug("invalid analysis request body", "error", err)
		writeJSONError(c, http.StatusBadRequest, "invalid request body")

		return
	}

	resp, err := analyzer.Analyze(req)
	if err != nil {
		if errors.Is(err, analysis.ErrNoReports) ||
			errors.Is(err, analysis.ErrNoAnalysis) ||
			errors.Is(err, analysis.ErrInvalidDate) {
			writeJSONError(c, http.StatusBadRequest, err.Error())
			return
		}

		logger.Error("analysis failed", "error", err)
		writeJSONError(c, http.StatusInternalServerError, "internal server error")

		return
	}

	if db.Enabled() {
		id, err := db.SaveAnalysisRun(c.Request().Context(), req, resp)
		if err != nil {
			logger.Warn("failed to record analysis run", "error", err)
		} else {
			c.ResponseWriter().Header().Set("X-Analysis-Run", id.String())
		}
	}

	writeJSON(c, http.StatusOK, resp)
}

func writeJSON(c flamego.Context, status int, v interface{}) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write json response", "error", err)
	}
}

func writeJSONError(c flamego.Context, status int, message string) {
	writeJSON(c, status, analysis.ErrorResponse{Error: message})
}
