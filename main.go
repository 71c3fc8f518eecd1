/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/clinitrend/cmd"
	"github.com/humaidq/clinitrend/logging"
)

func main() {
	logging.Init()

	app := &cli.Command{
		Name:  "clinitrend",
		Usage: "Clinitrend - Longitudinal clinical report analysis",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdAnalyze,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
