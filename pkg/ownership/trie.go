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

import "strings"

// PathTrie maps /-separated directory prefixes to subproject names and
// answers longest-prefix queries. Matching is segment-wise: a/b covers
// a/b/c but never a/bc.
type PathTrie struct {
	children map[string]*PathTrie
	name     string
	terminal bool
}

func NewPathTrie() *PathTrie {
	return &PathTrie{children: map[string]*PathTrie{}}
}

// Insert records subproject as the owner of prefix. Re-inserting a prefix
// overwrites the previous owner.
func (t *PathTrie) Insert(prefix, subproject string) {
	node := t
	for _, seg := range strings.Split(prefix, "/") {
		if seg == "" {
			continue
		}
		child, ok := node.children[seg]
		if !ok {
			child = NewPathTrie()
			node.children[seg] = child
		}
		node = child
	}
	node.terminal = true
	node.name = subproject
}

// LongestPrefix returns the deepest inserted prefix that is a segment-wise
// ancestor of path (or path itself) together with its subproject name.
// The trie guarantees a unique deepest match.
func (t *PathTrie) LongestPrefix(path string) (matched string, subproject string, found bool) {
	node := t
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		child, ok := node.children[seg]
		if !ok {
			break
		}
		node = child
		segs = append(segs, seg)
		if node.terminal {
			matched = strings.Join(segs, "/")
			subproject = node.name
			found = true
		}
	}
	return matched, subproject, found
}
