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

func newReactionsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reactions [owner]",
		Short: "List reactions on open issues and PRs of an account's repositories",
		Long: `Walk the non-fork, non-archived repositories of an account and report
every open issue or pull request that has collected at least one
reaction, with per-emoji counts.

Without an argument the authenticated user's repositories are scanned.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, scanTimeout)
			defer cancel()

			client, _, err := setup()
			if err != nil {
				return err
			}

			owner := ""
			if len(args) == 1 {
				owner = args[0]
			}

			var w *output.Writer
			if asJSON {
				w = output.NewWriter(os.Stdout)
			}

			found := 0
			err = client.Repos(ctx, owner, func(repo github.Repo) error {
				if repo.Fork || repo.Archived {
					return nil
				}
				return client.OpenIssueReactions(ctx, repo.Owner, repo.Name, func(ir github.IssueReactions) error {
					if !ir.Reactions.HasAny() {
						return nil
					}
					found++
					if w != nil {
						return w.Write(ir)
					}
					fmt.Println(render.ReactionBlock(ir))
					fmt.Println()
					return nil
				})
			})
			if err != nil {
				return err
			}

			if found == 0 && !asJSON {
				fmt.Println("No reactions on open issues or PRs.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit NDJSON records instead of text blocks")

	return cmd
}
