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
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"
)

// ExpandAliases replaces every entry that names an alias with the alias
// membership: entries [a,b,c] with aliases {a:[d,e,f], b:[e,g]} expand to
// [c,d,e,f,g]. An alias with no members contributes nothing, with a
// warning rather than a failure; empty entries are skipped silently. The
// result is deduplicated and sorted, and expanding it again is a no-op
// once none of its entries are alias keys.
func ExpandAliases(entries []string, aliases map[string][]string) []string {
	expanded := sets.String{}
	for _, entry := range entries {
		if ids, ok := aliases[entry]; ok {
			if len(ids) == 0 {
				klog.Warningf("alias %s has no members", entry)
			}
			expanded.Insert(ids...)
		} else if entry != "" {
			expanded.Insert(entry)
		}
	}
	return expanded.List()
}
