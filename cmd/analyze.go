/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/clinitrend/analysis"
	"github.com/humaidq/clinitrend/client"
)

var CmdAnalyze = &cli.Command{
	Name:      "analyze",
	Usage:     "Analyze a JSON report file (use - for stdin)",
	ArgsUsage: "<file|->",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Sources: cli.EnvVars("ANALYSIS_URL"),
			Usage:   "base URL of a running analysis server; analyzes locally when empty",
		},
	},
	Action: analyzeFile,
}

func analyzeFile(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errInputRequired
	}

	req, err := readAnalysisRequest(path, cmd.Root().Reader)
	if err != nil {
		return err
	}

	resp, err := runAnalysis(ctx, cmd.String("url"), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")

	return enc.Encode(resp)
}

func readAnalysisRequest(path string, stdin io.Reader) (analysis.Request, error) {
	var req analysis.Request

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to parse analysis request: %w", err)
	}

	return req, nil
}

func runAnalysis(ctx context.Context, baseURL string, req analysis.Request) (*analysis.Response, error) {
	if baseURL == "" {
		return analysis.NewAnalyzer().Analyze(req)
	}

	resp, err := client.New(baseURL).Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis request to %s failed: %w", baseURL, err)
	}

	return resp, nil
}
