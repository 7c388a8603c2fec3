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

// Package gitrepo discovers the GitHub repository and branch of the local
// working directory by shelling out to git.
package gitrepo

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// remotePatterns match the GitHub remote URL shapes git produces.
var remotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:[^@/]+@)?github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^git://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
}

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// Local returns the GitHub repository of the origin remote in the current
// working directory.
func Local() (Repo, error) {
	out, err := run("git", "remote", "get-url", "origin")
	if err != nil {
		return Repo{}, fmt.Errorf("not inside a git repository with an origin remote: %w", err)
	}
	return ParseRemoteURL(out)
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch() (string, error) {
	out, err := run("git", "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", fmt.Errorf("could not determine current branch (detached HEAD?): %w", err)
	}
	return out, nil
}

// ParseRemoteURL extracts owner and repository name from a GitHub remote URL.
func ParseRemoteURL(url string) (Repo, error) {
	url = strings.TrimSpace(url)
	for _, pattern := range remotePatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return Repo{Owner: m[1], Name: m[2]}, nil
		}
	}
	return Repo{}, fmt.Errorf("remote %q is not a GitHub repository URL", url)
}

func run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
