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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

// Repository is the subset of the GitHub repos API response we care about.
type Repository struct {
	Name   string `json:"name,omitempty"`
	GitURL string `json:"git_url,omitempty"`
}

// ListOrgRepos returns the repositories of a GitHub org. Honors
// GITHUB_TOKEN when set, same as the rest of the k8s tooling.
func ListOrgRepos(org string) ([]Repository, error) {
	var all []Repository
	client := http.Client{}
	for page := 1; ; page++ {
		url := fmt.Sprintf("https://api.github.com/orgs/%s/repos?per_page=100&page=%d", org, page)
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if token := os.Getenv("GITHUB_TOKEN"); len(token) != 0 {
			req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to list repos for org %s", org)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, errors.Errorf("bad status code listing repos for org %s: %d", org, resp.StatusCode)
		}
		body, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		var repos []Repository
		if err := json.Unmarshal(body, &repos); err != nil {
			return nil, errors.Wrapf(err, "unable to parse repos for org %s", org)
		}
		if len(repos) == 0 {
			break
		}
		all = append(all, repos...)
	}
	return all, nil
}
