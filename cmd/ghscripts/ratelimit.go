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
	"os"

	"github.com/spf13/cobra"

	"github.com/varonathe/ghscripts/internal/github"
	"github.com/varonathe/ghscripts/internal/output"
	"github.com/varonathe/ghscripts/internal/render"
)

func newRateLimitCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rate-limit",
		Short: "Show API rate-limit usage for the authenticated user",
		Long: `Show the rate-limit resources with at least one used request.

Calling /rate_limit does not itself count against any quota, so the
command can be run freely while debugging quota exhaustion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, commandTimeout)
			defer cancel()

			client, _, err := setup()
			if err != nil {
				return err
			}

			rows, err := client.RateLimits(ctx)
			if err != nil {
				return err
			}

			used := make([]github.QuotaRow, 0, len(rows))
			for _, row := range rows {
				if row.Used > 0 {
					used = append(used, row)
				}
			}

			if asJSON {
				w := output.NewWriter(os.Stdout)
				for _, row := range used {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			}

			if len(used) == 0 {
				fmt.Println("No rate-limited API requests used")
				return nil
			}
			fmt.Print(render.QuotaTable(used))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit NDJSON records instead of a table")

	return cmd
}
