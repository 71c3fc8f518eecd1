/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/clinitrend/analysis"
)

const (
	// DefaultHistoryLimit is the history list size when no limit is given.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit caps any requested history list size.
	MaxHistoryLimit = DefaultHistoryLimit * 4
)

// SaveAnalysisRun records a successful analysis and returns its ID
func SaveAnalysisRun(ctx context.Context, req analysis.Request, resp *analysis.Response) (uuid.UUID, error) {
	if pool == nil {
		return uuid.Nil, ErrDatabaseConnectionNotInitialized
	}

	run, err := newAnalysisRun(req, resp)
	if err != nil {
		return uuid.Nil, err
	}

	query := `
		INSERT INTO analysis_runs (
			id, patient_name, report_type, total_visits, date_start, date_end,
			abnormal_parameters, request, response
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	id := uuid.New()

	_, err = pool.Exec(ctx, query,
		id, run.PatientName, run.ReportType, run.TotalVisits,
		run.DateStart, run.DateEnd, run.AbnormalParameters,
		run.Request, run.Response,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis run: %w", err)
	}

	return id, nil
}

func clampHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}

	return min(limit, MaxHistoryLimit)
}

// ListAnalysisRuns returns the most recent runs, newest first
func ListAnalysisRuns(ctx context.Context, limit int) ([]AnalysisRunSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	limit = clampHistoryLimit(limit)

	query := `
		SELECT id, patient_name, report_type, total_visits, date_start, date_end,
		       abnormal_parameters, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRunSummary
	for rows.Next() {
		var run AnalysisRunSummary
		err := rows.Scan(
			&run.ID, &run.PatientName, &run.ReportType, &run.TotalVisits,
			&run.DateStart, &run.DateEnd, &run.AbnormalParameters, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return runs, nil
}

// GetAnalysisRun returns a single run by ID
func GetAnalysisRun(ctx context.Context, id string) (*AnalysisRun, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	runID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrAnalysisRunNotFound
	}

	query := `
		SELECT id, patient_name, report_type, total_visits, date_start, date_end,
		       abnormal_parameters, created_at, request, response
		FROM analysis_runs
		WHERE id = $1
	`

	var run AnalysisRun

	err = pool.QueryRow(ctx, query, runID).Scan(
		&run.ID, &run.PatientName, &run.ReportType, &run.TotalVisits,
		&run.DateStart, &run.DateEnd, &run.AbnormalParameters, &run.CreatedAt,
		&run.Request, &run.Response,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisRunNotFound
		}

		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	return &run, nil
}

// DeleteAnalysisRun removes a run
func DeleteAnalysisRun(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	runID, err := uuid.Parse(id)
	if err != nil {
		return ErrAnalysisRunNotFound
	}

	tag, err := pool.Exec(ctx, `DELETE FROM analysis_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis run: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAnalysisRunNotFound
	}

	return nil
}
