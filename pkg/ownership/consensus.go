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

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

// Finding is a single consensus observation, emitted on the operator
// stream rather than into the output document.
type Finding struct {
	Level   string // "warning" or "info"
	Message string
}

// AnalyzeConsensus computes, for one subproject identified by id (eg:
// sig-foo/bar) with the given OWNERS files, the intersection and union of
// approvers, reviewers and labels across all files. A subproject with more
// than one file and an empty intersection against a non-empty union lacks
// consensus; a subproject whose files are all unreadable claims ownership
// it cannot demonstrate. A single-file subproject trivially has
// common == union and produces no findings.
func AnalyzeConsensus(id string, paths map[string]*utils.OwnersInfo) (common, union *utils.AttributeSets, findings []Finding) {
	sortedPaths := make([]string, 0, len(paths))
	for path := range paths {
		sortedPaths = append(sortedPaths, path)
	}
	sort.Strings(sortedPaths)

	missing := 0
	for _, path := range sortedPaths {
		if !paths[path].IsPresent() {
			missing++
		}
	}
	if len(sortedPaths) > 0 && missing == len(sortedPaths) {
		findings = append(findings, Finding{
			Level:   "warning",
			Message: fmt.Sprintf("%s is missing ALL of its OWNERS files, why is this a subproject?", id),
		})
	}
	if missing > 0 {
		for _, path := range sortedPaths {
			if !paths[path].IsPresent() {
				findings = append(findings, Finding{
					Level:   "warning",
					Message: fmt.Sprintf("%s is missing %s", id, path),
				})
			}
		}
	}

	common = &utils.AttributeSets{}
	union = &utils.AttributeSets{}
	for _, attr := range []string{"approvers", "reviewers", "labels"} {
		var all []sets.String
		for _, path := range sortedPaths {
			all = append(all, sets.NewString(attrValues(paths[path], attr)...))
		}
		c, u := intersectAndUnite(all)
		setAttrValues(common, attr, c.List())
		setAttrValues(union, attr, u.List())
		if len(sortedPaths) > 1 {
			if c.Len() == 0 && u.Len() > 0 {
				findings = append(findings, Finding{
					Level:   "warning",
					Message: fmt.Sprintf("%s has no common %s", id, attr),
				})
			} else {
				findings = append(findings, Finding{
					Level:   "info",
					Message: fmt.Sprintf("OK: %s has %d common %s", id, c.Len(), attr),
				})
			}
		}
	}
	return common, union, findings
}

func intersectAndUnite(all []sets.String) (common, union sets.String) {
	common = sets.String{}
	union = sets.String{}
	for i, s := range all {
		if i == 0 {
			common = common.Union(s)
		} else {
			common = common.Intersection(s)
		}
		union = union.Union(s)
	}
	return common, union
}

func attrValues(owners *utils.OwnersInfo, attr string) []string {
	switch attr {
	case "approvers":
		return owners.Approvers
	case "reviewers":
		return owners.Reviewers
	case "labels":
		return owners.Labels
	}
	return nil
}

func setAttrValues(attrs *utils.AttributeSets, attr string, values []string) {
	switch attr {
	case "approvers":
		attrs.Approvers = values
	case "reviewers":
		attrs.Reviewers = values
	case "labels":
		attrs.Labels = values
	}
}
