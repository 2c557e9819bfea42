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
	"regexp"
	"strings"
)

// OWNERS file references move between two forms: the raw github uri that
// sigs.yaml records (https://raw.githubusercontent.com/org/repo/master/path)
// and the monorepo path used everywhere internally (org/repo/path).
var (
	rawGitHubURIRegex  = regexp.MustCompile(`https://raw.githubusercontent.com/(.*)/master/(.*)`)
	monorepoPathRegex  = regexp.MustCompile(`^([^/]+/[^/]+)/(.*)$`)
	aliasFileURIRegex  = regexp.MustCompile(`(.*)/master/(.*)`)
)

// MonorepoPath strips the raw-fetch prefix from uri:
// https://raw.githubusercontent.com/org/repo/master/path -> org/repo/path.
// Anything that is not a raw github uri passes through unchanged.
func MonorepoPath(uri string) string {
	return rawGitHubURIRegex.ReplaceAllString(uri, "$1/$2")
}

// RawGitHubURI is the inverse of MonorepoPath:
// org/repo/path -> https://raw.githubusercontent.com/org/repo/master/path.
func RawGitHubURI(path string) string {
	return monorepoPathRegex.ReplaceAllString(path, "https://raw.githubusercontent.com/$1/master/$2")
}

// AliasURI rewrites an OWNERS uri to the repo's OWNERS_ALIASES uri.
func AliasURI(uri string) string {
	return aliasFileURIRegex.ReplaceAllString(uri, "$1/master/OWNERS_ALIASES")
}

// RepoFromPath returns the org/repo of a monorepo path, or "" when the
// path has fewer than two segments.
func RepoFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}

// AliasPathForRepo is the monorepo path of a repo's alias file.
func AliasPathForRepo(repo string) string {
	return repo + "/OWNERS_ALIASES"
}

// StripOwnersFile makes an OWNERS path directory-granular for prefix
// matching: org/repo/a/b/OWNERS -> org/repo/a/b.
func StripOwnersFile(path string) string {
	return strings.TrimSuffix(path, "/OWNERS")
}
