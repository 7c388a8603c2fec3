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
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varonathe/ghscripts/internal/github"
	"github.com/varonathe/ghscripts/internal/gitrepo"
	"github.com/varonathe/ghscripts/internal/render"
)

// branchFilter holds the fork-status selection flags.
type branchFilter struct {
	allBranches bool
	hasPR       bool
	noPR        bool
	prStatus    string
}

// keep reports whether a branch passes the filter. Without --all-branches,
// branches even with the parent are noise and get dropped.
func (f branchFilter) keep(b github.BranchStatus) bool {
	if b.IsEven() && !f.allBranches {
		return false
	}
	if f.prStatus != "" && !strings.EqualFold(b.PRState, f.prStatus) {
		return false
	}
	if f.hasPR && b.PRNumber == 0 {
		return false
	}
	if f.noPR && b.PRNumber != 0 {
		return false
	}
	return true
}

func newForkStatusCommand() *cobra.Command {
	var (
		listAll bool
		filter  branchFilter
	)

	cmd := &cobra.Command{
		Use:   "fork-status [owner/repo...]",
		Short: "Compare the branches of forks against their parent repositories",
		Long: `For each fork, compare every branch against the parent repository:
whether the branch exists upstream, how far it is ahead or behind, and
the latest pull request opened from it.

Branches even with the parent are hidden unless --all-branches is
given. With --all, every fork owned by the authenticated user is
checked; without arguments the fork is taken from the origin remote of
the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, scanTimeout)
			defer cancel()

			client, _, err := setup()
			if err != nil {
				return err
			}

			targets, err := forkTargets(ctx, client, listAll, args)
			if err != nil {
				return err
			}

			for i, target := range targets {
				owner, name, err := parseRepository(target)
				if err != nil {
					return err
				}
				fork, err := client.ForkInfo(ctx, owner, name)
				if err != nil {
					return err
				}

				if i > 0 {
					fmt.Println()
				}
				fmt.Println(render.Underline(fmt.Sprintf("%s → %s", fork.FullName, fork.ParentFullName)))

				shown := 0
				err = client.BranchStatuses(ctx, fork, func(b github.BranchStatus) error {
					if !filter.keep(b) {
						return nil
					}
					shown++
					fmt.Println(render.BranchLine(b))
					return nil
				})
				if err != nil {
					return err
				}
				if shown == 0 {
					fmt.Println("-- nothing --")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listAll, "all", false, "Check every fork owned by the authenticated user")
	cmd.Flags().BoolVarP(&filter.allBranches, "all-branches", "B", false, "Show branches that are even with the parent too")
	cmd.Flags().BoolVar(&filter.hasPR, "has-pr", false, "Only branches with a pull request")
	cmd.Flags().BoolVar(&filter.noPR, "no-pr", false, "Only branches without a pull request")
	cmd.Flags().StringVar(&filter.prStatus, "pr-status", "", "Only branches whose pull request has this state (open, closed, merged)")
	cmd.MarkFlagsMutuallyExclusive("has-pr", "no-pr")

	return cmd
}

// forkTargets decides which forks to report on: every owned fork with
// --all, the given arguments, or the repository of the working directory.
func forkTargets(ctx context.Context, client *github.Client, listAll bool, args []string) ([]string, error) {
	if listAll {
		var targets []string
		err := client.Repos(ctx, "", func(r github.Repo) error {
			if r.Fork {
				targets = append(targets, r.FullName)
			}
			return nil
		})
		return targets, err
	}
	if len(args) > 0 {
		return args, nil
	}
	local, err := gitrepo.Local()
	if err != nil {
		return nil, err
	}
	return []string{local.String()}, nil
}

// parseRepository parses an owner/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}
