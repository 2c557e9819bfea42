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

package utils

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
)

// ShallowClone clones the repository at gitURL into dir with depth 1.
func ShallowClone(gitURL, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	cmd := exec.Command(
		"/bin/bash",
		"-c",
		fmt.Sprintf("git clone --depth 1 %s %s", gitURL, dir),
	)

	if err := cmd.Run(); err != nil {
		return err
	}

	return nil
}

// CopyStagedAliases copies kubernetes/kubernetes/OWNERS_ALIASES into each
// repo published out of its staging directory, since staged repos share the
// monorepo's aliases.
func CopyStagedAliases(repoPath string) error {
	k8sRepoPath := filepath.Join(repoPath, "kubernetes", "kubernetes")
	staged, err := filepath.Glob(filepath.Join(k8sRepoPath, "staging", "src", "k8s.io", "*"))
	if err != nil {
		return err
	}
	aliases, err := ioutil.ReadFile(filepath.Join(k8sRepoPath, "OWNERS_ALIASES"))
	if err != nil {
		return err
	}
	for _, dir := range staged {
		repo := filepath.Base(dir)
		stagedRepoPath := filepath.Join(repoPath, "kubernetes", repo)
		if _, err := os.Stat(stagedRepoPath); err != nil {
			continue
		}
		err = ioutil.WriteFile(filepath.Join(stagedRepoPath, "OWNERS_ALIASES"), aliases, 0644)
		if err != nil {
			return err
		}
	}
	return nil
}
