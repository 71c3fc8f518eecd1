/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/clinitrend/analysis"
)

// AnalysisRunSummary is a row of the history list
type AnalysisRunSummary struct {
	ID                 uuid.UUID `db:"id"`
	PatientName        string    `db:"patient_name"`
	ReportType         string    `db:"report_type"`
	TotalVisits        int       `db:"total_visits"`
	DateStart          time.Time `db:"date_start"`
	DateEnd            time.Time `db:"date_end"`
	AbnormalParameters []string  `db:"abnormal_parameters"`
	CreatedAt          time.Time `db:"created_at"`
}

// HasAbnormal reports whether any parameter was out of range
func (s AnalysisRunSummary) HasAbnormal() bool {
	return len(s.AbnormalParameters) > 0
}

// AnalysisRun is a stored request together with the analysis it produced
type AnalysisRun struct {
	AnalysisRunSummary
	Request  analysis.Request  `db:"request"`
	Response analysis.Response `db:"response"`
}

// newAnalysisRun derives the indexed columns from a successful analysis.
func newAnalysisRun(req analysis.Request, resp *analysis.Response) (*AnalysisRun, error) {
	start, err := time.Parse(analysis.DateLayout, resp.Analysis.DateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	end, err := time.Parse(analysis.DateLayout, resp.Analysis.DateRange.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	abnormal := make([]string, 0, len(resp.AbnormalParameters))
	for _, p := range resp.AbnormalParameters {
		abnormal = append(abnormal, string(p))
	}

	return &AnalysisRun{
		AnalysisRunSummary: AnalysisRunSummary{
			PatientName:        resp.Analysis.PatientInfo.Name,
			ReportType:         resp.Analysis.PatientInfo.ReportType,
			TotalVisits:        resp.Analysis.TotalVisits,
			DateStart:          start,
			DateEnd:            end,
			AbnormalParameters: abnormal,
		},
		Request:  req,
		Response: *resp,
	}, nil
}
