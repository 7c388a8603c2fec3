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

	"github.com/varonathe/ghscripts/internal/github"
	"github.com/varonathe/ghscripts/internal/render"
)

func newActiveCommand() *cobra.Command {
	var (
		includeForks   bool
		includePrivate bool
		days           int
	)

	cmd := &cobra.Command{
		Use:   "active [owner]",
		Short: "Show unfinished workflow runs across an account's repositories",
		Long: `Walk the repositories of an account and report every GitHub Actions
workflow run from the recent window that has not completed yet: queued,
waiting, pending or in progress.

Without an argument the authenticated user's repositories are scanned.
Archived repositories are always skipped; forks and private repositories
are skipped unless requested.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, scanTimeout)
			defer cancel()

			client, cfg, err := setup()
			if err != nil {
				return err
			}
			if days == 0 {
				days = cfg.Defaults.ActiveWindowDays
			}
			cutoff := time.Now().AddDate(0, 0, -days)

			owner := ""
			if len(args) == 1 {
				owner = args[0]
			}

			found := 0
			err = client.Repos(ctx, owner, func(repo github.Repo) error {
				if repo.Archived {
					return nil
				}
				if repo.Fork && !includeForks {
					return nil
				}
				if repo.Private && !includePrivate {
					return nil
				}

				var lines []string
				err := client.WorkflowRunsSince(ctx, repo.Owner, repo.Name, cutoff, func(run github.RunRow) error {
					if run.Status == "completed" {
						return nil
					}
					lines = append(lines, render.RunLine(run))
					return nil
				})
				if err != nil {
					return err
				}
				if len(lines) == 0 {
					return nil
				}

				found += len(lines)
				fmt.Println(render.Underline(repo.FullName))
				for _, line := range lines {
					fmt.Println(line)
				}
				fmt.Println()
				return nil
			})
			if err != nil {
				return err
			}

			if found == 0 {
				fmt.Printf("No active workflow runs in the last %d days.\n", days)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeForks, "include-forks", "F", false, "Include runs in forks")
	cmd.Flags().BoolVarP(&includePrivate, "include-private", "P", false, "Include runs in private repositories")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "How many days back to look (default from config)")

	return cmd
}
