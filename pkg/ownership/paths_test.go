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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonorepoPath(t *testing.T) {
	assert.Equal(t,
		"kubernetes/kubernetes/pkg/api/OWNERS",
		MonorepoPath("https://raw.githubusercontent.com/kubernetes/kubernetes/master/pkg/api/OWNERS"))
	assert.Equal(t,
		"kubernetes/test-infra/OWNERS",
		MonorepoPath("https://raw.githubusercontent.com/kubernetes/test-infra/master/OWNERS"))
	// non-uris pass through
	assert.Equal(t, "kubernetes/kubernetes/OWNERS", MonorepoPath("kubernetes/kubernetes/OWNERS"))
}

func TestRawGitHubURI(t *testing.T) {
	assert.Equal(t,
		"https://raw.githubusercontent.com/kubernetes/kubernetes/master/pkg/api/OWNERS",
		RawGitHubURI("kubernetes/kubernetes/pkg/api/OWNERS"))
}

func TestURIRoundTrip(t *testing.T) {
	uri := "https://raw.githubusercontent.com/kubernetes/community/master/sig-testing/OWNERS"
	assert.Equal(t, uri, RawGitHubURI(MonorepoPath(uri)))
}

func TestAliasURI(t *testing.T) {
	assert.Equal(t,
		"https://raw.githubusercontent.com/kubernetes/kubernetes/master/OWNERS_ALIASES",
		AliasURI("https://raw.githubusercontent.com/kubernetes/kubernetes/master/pkg/api/OWNERS"))
}

func TestRepoFromPath(t *testing.T) {
	assert.Equal(t, "kubernetes/kubernetes", RepoFromPath("kubernetes/kubernetes/pkg/api/OWNERS"))
	assert.Equal(t, "kubernetes/kubernetes", RepoFromPath("kubernetes/kubernetes/OWNERS"))
	assert.Equal(t, "", RepoFromPath("kubernetes"))
	assert.Equal(t, "", RepoFromPath(""))
}

func TestStripOwnersFile(t *testing.T) {
	assert.Equal(t, "org/repo/pkg", StripOwnersFile("org/repo/pkg/OWNERS"))
	assert.Equal(t, "org/repo", StripOwnersFile("org/repo/OWNERS"))
	assert.Equal(t, "org/repo/OWNERS_ALIASES", StripOwnersFile("org/repo/OWNERS_ALIASES"))
}
