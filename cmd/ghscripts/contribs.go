// Copyright 2025 The ghscripts Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/varonathe/ghscripts/internal/render"
)

func newContribsCommand() *cobra.Command {
	var (
		days      int
		highlight bool
	)

	cmd := &cobra.Command{
		Use:   "contribs",
		Short: "Tabulate your commit contributions per repository per day",
		Long: `Query the contributions collection of the authenticated user for each
of the last N days and render a table with one column per day, one row
per repository, and row and column totals.

Days follow the local timezone: each column covers one local calendar
day from midnight to midnight.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, scanTimeout)
			defer cancel()

			client, cfg, err := setup()
			if err != nil {
				return err
			}
			if days == 0 {
				days = cfg.Defaults.ContribDays
			}

			tbl := render.NewContribTable()
			now := time.Now()
			for i := days - 1; i >= 0; i-- {
				day := now.AddDate(0, 0, -i)
				from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
				to := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.Local)

				contribs, err := client.Contributions(ctx, from, to)
				if err != nil {
					return err
				}
				tbl.Add(from, contribs)
			}

			table := tbl.Render()
			if highlight {
				table = render.Highlight(table)
			}
			fmt.Print(table)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "How many days back to tabulate (default from config)")
	cmd.Flags().BoolVarP(&highlight, "highlight", "H", false, "Shade alternating rows for readability")

	return cmd
}
