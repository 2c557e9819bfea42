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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

func resolveTestContext() *utils.Context {
	return &utils.Context{
		Sigs: []utils.Group{
			{
				Dir:  "sig-foo",
				Name: "Foo",
				Subprojects: []utils.Subproject{
					{
						Name:   "core",
						Owners: []string{"https://raw.githubusercontent.com/org/repo/master/api/OWNERS"},
					},
				},
			},
		},
		WorkingGroups: []utils.Group{
			{Dir: "wg-bar", Name: "Bar"},
		},
		Committees: []utils.Group{
			{Dir: "committee-steering", Name: "Steering"},
		},
	}
}

func TestResolveDirectAndPrefixMatch(t *testing.T) {
	table := NewTable()
	table.Owners["org/repo/api/OWNERS"] = &utils.OwnersInfo{}
	table.Owners["org/repo/api/v2/OWNERS"] = &utils.OwnersInfo{}

	context := resolveTestContext()
	resolution, err := Resolve(context, table, "committee-steering")
	require.NoError(t, err)

	// declared path, no justification
	assert.Equal(t, "core", resolution.Assignments["org/repo/api/OWNERS"])
	_, hasReason := resolution.Reasons["org/repo/api/OWNERS"]
	assert.False(t, hasReason)

	// undeclared descendant resolves by longest prefix, with justification
	assert.Equal(t, "core", resolution.Assignments["org/repo/api/v2/OWNERS"])
	reason := resolution.Reasons["org/repo/api/v2/OWNERS"]
	assert.Contains(t, reason, "longest prefix match")
	assert.Contains(t, reason, "org/repo/api")
	assert.Contains(t, reason, "sig-foo/core")

	// the subproject owners list is rebuilt in monorepo form, sorted
	core := resolution.Subprojects["core"].Subproject
	assert.Equal(t, []string{"org/repo/api/OWNERS", "org/repo/api/v2/OWNERS"}, core.Owners)
	assert.Equal(t, "sig-foo", resolution.Subprojects["core"].Parent)
}

func TestResolveUnknownCatchAll(t *testing.T) {
	table := NewTable()
	table.Owners["other/repo/OWNERS"] = &utils.OwnersInfo{}

	context := resolveTestContext()
	resolution, err := Resolve(context, table, "committee-steering")
	require.NoError(t, err)

	assert.Equal(t, UnknownSubproject, resolution.Assignments["other/repo/OWNERS"])
	assert.Contains(t, resolution.Reasons["other/repo/OWNERS"], "committee-steering/unknown")

	unknown := resolution.Subprojects[UnknownSubproject]
	require.NotNil(t, unknown)
	assert.Equal(t, "committee-steering", unknown.Parent)
	assert.Equal(t, []string{"other/repo/OWNERS"}, unknown.Subproject.Owners)

	// the placeholder landed in the steering committee itself
	steering := resolution.Groups["committee-steering"]
	require.NotNil(t, steering)
	var names []string
	for _, sp := range steering.Subprojects {
		names = append(names, sp.Name)
	}
	assert.Contains(t, names, UnknownSubproject)
}

func TestResolvePartition(t *testing.T) {
	table := NewTable()
	for _, path := range []string{
		"org/repo/api/OWNERS",
		"org/repo/api/v2/OWNERS",
		"org/repo/cmd/OWNERS",
		"other/repo/OWNERS",
	} {
		table.Owners[path] = &utils.OwnersInfo{}
	}

	context := resolveTestContext()
	resolution, err := Resolve(context, table, "committee-steering")
	require.NoError(t, err)

	// every table path is assigned exactly once across all owners lists
	seen := map[string]int{}
	for _, entry := range resolution.Subprojects {
		for _, path := range entry.Subproject.Owners {
			seen[path]++
		}
	}
	for _, path := range table.OwnersPaths() {
		assert.Equal(t, 1, seen[path], "path %s", path)
	}
	for path, count := range seen {
		assert.Equal(t, 1, count, "path %s", path)
	}
}

func TestResolveMissingDefaultGroup(t *testing.T) {
	context := resolveTestContext()
	_, err := Resolve(context, NewTable(), "committee-nope")
	require.Error(t, err)
	var consistencyErr *ConsistencyError
	assert.True(t, errors.As(err, &consistencyErr))
}

func TestResolveWorkingGroupsOwnNothing(t *testing.T) {
	context := resolveTestContext()
	context.WorkingGroups[0].Subprojects = []utils.Subproject{
		{Name: "wg-project", Owners: []string{"https://raw.githubusercontent.com/wg/repo/master/OWNERS"}},
	}
	resolution, err := Resolve(context, NewTable(), "committee-steering")
	require.NoError(t, err)
	_, ok := resolution.Subprojects["wg-project"]
	assert.False(t, ok)
}
