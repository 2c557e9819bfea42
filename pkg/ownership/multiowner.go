/*
Copyright 2022 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ownership

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

// PrimaryRepo is the monorepo itself; it appears under practically every
// group and is excluded from the repo-groups SQL batch.
const PrimaryRepo = "kubernetes/kubernetes"

// KnownSharedRepos hold API definitions the whole project depends on, so
// multiple groups claiming them is expected. They are annotated in the
// multi-owner report, never suppressed.
var KnownSharedRepos = sets.NewString(
	"kubernetes/kubernetes",
	"kubernetes/api",
	"kubernetes/client-go",
)

// ReposFromGroup returns the sorted org/repo list a group claims, derived
// from the first two path segments of every declared owners reference
// under its subprojects.
func ReposFromGroup(group *utils.Group) []string {
	repos := sets.String{}
	for _, sp := range group.Subprojects {
		for _, uri := range sp.Owners {
			if repo := RepoFromPath(MonorepoPath(uri)); repo != "" {
				repos.Insert(repo)
			}
		}
	}
	return repos.List()
}

// GroupDisplayName renders the human readable name of a group:
// sig-foo -> SIG Foo, committee-bar -> Bar Committee.
func GroupDisplayName(group *utils.Group) string {
	if strings.HasPrefix(group.Dir, "sig-") {
		return "SIG " + group.Name
	}
	if strings.HasPrefix(group.Dir, "committee-") {
		return group.Name + " Committee"
	}
	return "UNKNOWN " + group.Dir
}

// MultiOwnerEntry is one repository claimed by more than one group.
type MultiOwnerEntry struct {
	Repo   string
	Groups []string
	// Shared marks repos on the known cross-cutting list; multiple owners
	// are expected there and it is up to the report's reader to judge.
	Shared bool
}

// ReposOwnedByMultipleGroups finds every repository claimed by more than
// one code-owning group (sigs and committees), sorted by descending owner
// count, ties broken by repository name.
func ReposOwnedByMultipleGroups(context *utils.Context) []MultiOwnerEntry {
	owners := map[string][]string{}
	for _, list := range [][]utils.Group{context.Sigs, context.Committees} {
		for i := range list {
			group := &list[i]
			for _, repo := range ReposFromGroup(group) {
				owners[repo] = append(owners[repo], group.Name)
			}
		}
	}

	var entries []MultiOwnerEntry
	for repo, groups := range owners {
		if len(groups) > 1 {
			entries = append(entries, MultiOwnerEntry{
				Repo:   repo,
				Groups: groups,
				Shared: KnownSharedRepos.Has(repo),
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].Groups) != len(entries[j].Groups) {
			return len(entries[i].Groups) > len(entries[j].Groups)
		}
		return entries[i].Repo < entries[j].Repo
	})
	return entries
}

var updateGHAReposTemplate = `
update gha_repos set repo_group = '%s' where name in (
%s
);
`

// WriteRepoGroupsSQL writes one gha_repos update statement per sig that
// owns at least one repository besides the monorepo itself.
func WriteRepoGroupsSQL(w io.Writer, context *utils.Context) error {
	for i := range context.Sigs {
		group := &context.Sigs[i]
		var repos []string
		for _, repo := range ReposFromGroup(group) {
			if repo == PrimaryRepo {
				continue
			}
			repos = append(repos, fmt.Sprintf("  '%s'", repo))
		}
		if len(repos) == 0 {
			continue
		}
		_, err := fmt.Fprintf(w, updateGHAReposTemplate, GroupDisplayName(group), strings.Join(repos, ",\n"))
		if err != nil {
			return err
		}
	}
	return nil
}
