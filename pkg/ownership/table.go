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
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

// Table is the in-memory owners table: every parsed OWNERS and
// OWNERS_ALIASES file keyed by monorepo path. It round-trips through
// owners.yaml so repeated runs only parse paths not seen before.
type Table struct {
	Aliases map[string]*utils.Aliases    `json:"aliases" yaml:"aliases"`
	Owners  map[string]*utils.OwnersInfo `json:"owners" yaml:"owners"`
}

func NewTable() *Table {
	return &Table{
		Aliases: map[string]*utils.Aliases{},
		Owners:  map[string]*utils.OwnersInfo{},
	}
}

// LoadTable reads a previously saved owners.yaml; a missing file yields an
// empty table.
func LoadTable(path string) (*Table, error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return NewTable(), nil
	}
	if err != nil {
		return nil, err
	}
	table := NewTable()
	if err := yaml.UnmarshalStrict(data, table); err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}
	if table.Aliases == nil {
		table.Aliases = map[string]*utils.Aliases{}
	}
	if table.Owners == nil {
		table.Owners = map[string]*utils.OwnersInfo{}
	}
	return table, nil
}

func (t *Table) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

// OwnersPaths returns the sorted monorepo paths of every OWNERS record.
func (t *Table) OwnersPaths() []string {
	paths := make([]string, 0, len(t.Owners))
	for path := range t.Owners {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// LoadFromDir walks one cloned org tree (eg: /repos/kubernetes-sigs) and
// parses every OWNERS and OWNERS_ALIASES file not already in the table,
// keyed as if all orgs lived in one monorepo laid out org/repo/files.
// Unreadable files are recorded with present=false; files with the wrong
// shape are logged and treated as empty.
func (t *Table) LoadFromDir(orgRoot string) error {
	files, err := utils.GetOwnerFiles(orgRoot)
	if err != nil {
		return errors.Wrapf(err, "unable to walk %s", orgRoot)
	}
	parent := filepath.Dir(filepath.Clean(orgRoot))
	for _, file := range files {
		rel, err := filepath.Rel(parent, file)
		if err != nil {
			return err
		}
		monorepoPath := filepath.ToSlash(rel)
		if strings.HasSuffix(monorepoPath, "OWNERS_ALIASES") {
			t.loadAliasFile(monorepoPath, file)
		} else {
			t.loadOwnersFile(monorepoPath, file)
		}
	}
	return nil
}

func (t *Table) loadAliasFile(monorepoPath, file string) {
	if _, ok := t.Aliases[monorepoPath]; ok {
		return
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		klog.Warning(&MissingDataError{Path: monorepoPath, Err: err})
		t.Aliases[monorepoPath] = &utils.Aliases{}
		return
	}
	aliases, err := utils.GetAliasesFromBytes(data)
	if err != nil {
		klog.Warning(&MalformedDataError{Path: monorepoPath, Err: err})
		aliases = &utils.Aliases{}
	}
	t.Aliases[monorepoPath] = aliases
}

func (t *Table) loadOwnersFile(monorepoPath, file string) {
	if _, ok := t.Owners[monorepoPath]; ok {
		return
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		klog.Warning(&MissingDataError{Path: monorepoPath, Err: err})
		present := false
		t.Owners[monorepoPath] = &utils.OwnersInfo{Present: &present}
		return
	}
	owners, err := utils.GetOwnersInfoFromBytes(data)
	if err != nil {
		klog.Warning(&MalformedDataError{Path: monorepoPath, Err: err})
		owners = &utils.OwnersInfo{}
	}
	SimplifyFilters(owners)
	t.Owners[monorepoPath] = owners
}

// SimplifyFilters folds the catch-all `.*` filter into the top-level
// approvers/reviewers and drops every other filter key. Finer-grained
// filters are deliberately not modeled.
func SimplifyFilters(owners *utils.OwnersInfo) {
	if owners.Filters == nil {
		return
	}
	all := owners.Filters[".*"]
	owners.Approvers = all.Approvers
	owners.Reviewers = all.Reviewers
	owners.Filters = nil
}

// ExpandAll dereferences aliases in every OWNERS record that has not been
// expanded yet, using the record's repo-level OWNERS_ALIASES, then marks
// the record so the pass never runs twice.
func (t *Table) ExpandAll() {
	for _, path := range t.OwnersPaths() {
		owners := t.Owners[path]
		if owners.Expanded {
			continue
		}
		aliasPath := AliasPathForRepo(RepoFromPath(path))
		var aliases map[string][]string
		if a, ok := t.Aliases[aliasPath]; ok && a != nil {
			aliases = a.RepoAliases
		}
		klog.V(2).Infof("expanding %s using %s", path, aliasPath)
		owners.Approvers = ExpandAliases(owners.Approvers, aliases)
		owners.Reviewers = ExpandAliases(owners.Reviewers, aliases)
		owners.Expanded = true
	}
}

// PruneDuplicateReviewers drops every reviewer that is already an
// approver, in every record. Approvers imply review rights.
func (t *Table) PruneDuplicateReviewers() {
	for _, owners := range t.Owners {
		PruneReviewers(owners)
	}
}

// PruneReviewers removes owners.Approvers from owners.Reviewers. Safe to
// run any number of times.
func PruneReviewers(owners *utils.OwnersInfo) {
	if len(owners.Reviewers) == 0 {
		return
	}
	approvers := sets.NewString(owners.Approvers...)
	owners.Reviewers = sets.NewString(owners.Reviewers...).Difference(approvers).List()
}
