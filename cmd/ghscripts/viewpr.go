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
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/varonathe/ghscripts/internal/gitrepo"
)

func newViewPRCommand() *cobra.Command {
	var (
		branchFlag string
		printOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "view-pr",
		Short: "Open the pull request for the current branch in the browser",
		Long: `Find the most recent pull request opened from the current branch of the
repository in the working directory and open it in the default browser.

When the repository is a fork, the pull request is looked up on the
parent. The search covers open, closed and merged pull requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, commandTimeout)
			defer cancel()

			local, err := gitrepo.Local()
			if err != nil {
				return err
			}
			branch := branchFlag
			if branch == "" {
				branch, err = gitrepo.CurrentBranch()
				if err != nil {
					return err
				}
			}

			client, _, err := setup()
			if err != nil {
				return err
			}

			repo, fork, err := client.RepoByName(ctx, local.Owner, local.Name)
			if err != nil {
				return err
			}

			// PRs from a fork live on the parent repository.
			baseOwner, baseRepo := repo.Owner, repo.Name
			if fork != nil {
				baseOwner, baseRepo = fork.ParentOwner, fork.ParentName
			}
			head := fmt.Sprintf("%s:%s", repo.FullName, branch)

			pr, err := client.LatestPullForHead(ctx, baseOwner, baseRepo, head)
			if err != nil {
				return err
			}

			fmt.Printf("PR #%d (%s): %s\n", pr.Number, strings.ToUpper(pr.State), pr.Title)
			if printOnly {
				fmt.Println(pr.HTMLURL)
				return nil
			}
			return browser.OpenURL(pr.HTMLURL)
		},
	}

	cmd.Flags().StringVarP(&branchFlag, "branch", "B", "", "Look up this branch instead of the checked-out one")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the URL instead of opening a browser")

	return cmd
}
