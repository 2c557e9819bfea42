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
	"sort"

	"k8s.io/klog/v2"

	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

// UnknownSubproject is the synthetic catch-all for OWNERS files no declared
// subproject covers.
const UnknownSubproject = "unknown"

// SubprojectEntry tracks one subproject during resolution, with a
// back-reference to its parent group.
type SubprojectEntry struct {
	Subproject *utils.Subproject
	Parent     string
	FullName   string
	// OwnersPaths is the declared owners list in monorepo form.
	OwnersPaths []string
}

// Resolution is the outcome of assigning every OWNERS path to a
// subproject. Reasons is a side channel keyed by path: justification text
// for prefix-matched and unknown assignments, absent for directly declared
// ones, so consumers of the core data never have to interpret it.
type Resolution struct {
	Groups      map[string]*utils.Group
	Subprojects map[string]*SubprojectEntry
	Assignments map[string]string
	Reasons     map[string]string
}

// loadGroupsAndSubprojects indexes groups by dir and subprojects by name.
// Only sigs and committees are allowed to own code. A synthetic "unknown"
// subproject is appended under defaultGroup to catch unowned paths.
func loadGroupsAndSubprojects(context *utils.Context, defaultGroup string) (map[string]*utils.Group, map[string]*SubprojectEntry, error) {
	groups := map[string]*utils.Group{}
	for _, list := range [][]utils.Group{context.Sigs, context.WorkingGroups, context.UserGroups, context.Committees} {
		for i := range list {
			groups[list[i].Dir] = &list[i]
		}
	}

	dg, ok := groups[defaultGroup]
	if !ok {
		return nil, nil, &ConsistencyError{Path: "", Subproject: defaultGroup + "/" + UnknownSubproject}
	}
	dg.Subprojects = append(dg.Subprojects, utils.Subproject{
		Name:        UnknownSubproject,
		Description: "placeholder subproject to catch any OWNERS files not covered by other subprojects",
	})

	subprojects := map[string]*SubprojectEntry{}
	for _, g := range groups {
		if g != dg && !ownsCode(context, g) {
			continue
		}
		for i := range g.Subprojects {
			sp := &g.Subprojects[i]
			if _, exists := subprojects[sp.Name]; exists {
				klog.Warningf("subproject %s already exists", sp.Name)
			}
			paths := make([]string, 0, len(sp.Owners))
			for _, uri := range sp.Owners {
				paths = append(paths, MonorepoPath(uri))
			}
			subprojects[sp.Name] = &SubprojectEntry{
				Subproject:  sp,
				Parent:      g.Dir,
				FullName:    g.Dir + "/" + sp.Name,
				OwnersPaths: paths,
			}
		}
	}
	return groups, subprojects, nil
}

// ownsCode reports whether g belongs to a group type allowed to own
// subprojects (sigs and committees; working groups and user groups may
// not).
func ownsCode(context *utils.Context, g *utils.Group) bool {
	for i := range context.Sigs {
		if &context.Sigs[i] == g {
			return true
		}
	}
	for i := range context.Committees {
		if &context.Committees[i] == g {
			return true
		}
	}
	return false
}

// Resolve assigns every OWNERS path known to the table to exactly one
// subproject: directly when sigs.yaml declares the path, by longest
// prefix match against every declared path otherwise, falling back to the
// synthetic unknown subproject. Each subproject's owners list is rebuilt
// from its assignments, sorted by path.
func Resolve(context *utils.Context, table *Table, defaultGroup string) (*Resolution, error) {
	groups, subprojects, err := loadGroupsAndSubprojects(context, defaultGroup)
	if err != nil {
		return nil, err
	}

	assignments := map[string]string{}
	reasons := map[string]string{}
	trie := NewPathTrie()

	// first pass: declared owner -> subproject mappings from sigs.yaml
	for name, entry := range subprojects {
		for _, path := range entry.OwnersPaths {
			assignments[path] = name
			trie.Insert(StripOwnersFile(path), name)
		}
	}

	// second pass: guess the rest by longest prefix
	for _, path := range table.OwnersPaths() {
		if _, ok := assignments[path]; ok {
			continue
		}
		prefix, name, found := trie.LongestPrefix(StripOwnersFile(path))
		if !found {
			name = UnknownSubproject
		}
		entry, ok := subprojects[name]
		if !ok {
			return nil, &ConsistencyError{Path: path, Subproject: name}
		}
		assignments[path] = name
		if found {
			reasons[path] = fmt.Sprintf("longest prefix match: %s implies ownership by %s", prefix, entry.FullName)
		} else {
			reasons[path] = fmt.Sprintf("no declared subproject covers this path, assigning to %s", entry.FullName)
		}
	}

	// rebuild every owners list from the assignments
	for _, entry := range subprojects {
		entry.Subproject.Owners = nil
	}
	for path, name := range assignments {
		entry, ok := subprojects[name]
		if !ok {
			return nil, &ConsistencyError{Path: path, Subproject: name}
		}
		entry.Subproject.Owners = append(entry.Subproject.Owners, path)
	}
	for _, entry := range subprojects {
		sort.Strings(entry.Subproject.Owners)
	}

	return &Resolution{
		Groups:      groups,
		Subprojects: subprojects,
		Assignments: assignments,
		Reasons:     reasons,
	}, nil
}
