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

import "fmt"

// MissingDataError marks a declaration file that is referenced but could
// not be read or fetched. Recorded with present=false, never fatal.
type MissingDataError struct {
	Path string
	Err  error
}

func (e *MissingDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing data for %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("missing data for %s", e.Path)
}

func (e *MissingDataError) Unwrap() error { return e.Err }

// MalformedDataError marks a declaration file that parsed but has the
// wrong shape, eg an OWNERS_ALIASES file holding a list instead of a
// mapping. Logged as a warning and treated as empty.
type MalformedDataError struct {
	Path string
	Err  error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed data in %s: %v", e.Path, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// ConsistencyError marks an ownership claim that resolves to a subproject
// absent from sigs.yaml. This is a structural problem in the dataset and
// aborts the run.
type ConsistencyError struct {
	Path       string
	Subproject string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s resolves to subproject %q which does not exist in sigs.yaml", e.Path, e.Subproject)
}
