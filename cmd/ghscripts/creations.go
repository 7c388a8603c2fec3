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
	"time"

	"github.com/spf13/cobra"

	"github.com/varonathe/ghscripts/internal/github"
	"github.com/varonathe/ghscripts/internal/output"
	"github.com/varonathe/ghscripts/internal/render"
)

const sinceLayout = "2006-01-02"

func newCreationsCommand() *cobra.Command {
	var (
		sinceFlag string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "creations [user]",
		Short: "List things a user recently created on GitHub",
		Long: `List recent creations from a user's public event feed: repositories
created or forked, issues and pull requests opened, closed, reopened or
merged, and releases published.

Without an argument the authenticated user's own feed is used. The feed
only reaches back about 90 days; --since dates older than that silently
return everything the feed still holds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, scanTimeout)
			defer cancel()

			since, err := parseSince(sinceFlag)
			if err != nil {
				return err
			}

			client, _, err := setup()
			if err != nil {
				return err
			}

			user := ""
			if len(args) == 1 {
				user = args[0]
			} else {
				user, err = client.AuthenticatedLogin(ctx)
				if err != nil {
					return err
				}
			}

			var w *output.Writer
			if asJSON {
				w = output.NewWriter(os.Stdout)
			}

			count := 0
			err = client.CreationsSince(ctx, user, since, func(ev github.CreationEvent) error {
				count++
				if w != nil {
					return w.Write(ev)
				}
				fmt.Println(render.CreationLine(ev))
				return nil
			})
			if err != nil {
				return err
			}

			if count == 0 && !asJSON {
				fmt.Printf("No activity for %s since %s.\n", user, since.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sinceFlag, "since", "", "Report events since this date, YYYY-MM-DD (default: 24 hours ago)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit NDJSON records instead of text lines")

	return cmd
}

// parseSince interprets the --since flag as a local date, defaulting to 24
// hours before now when empty.
func parseSince(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now().Add(-24 * time.Hour), nil
	}
	since, err := time.ParseInLocation(sinceLayout, flag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since date %q, expected YYYY-MM-DD", flag)
	}
	return since, nil
}
