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

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kubernetes-sigs/subprojects/pkg/ownership"
	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

var reportSigsYaml, ownersYaml, repoPath, reportOutput, defaultGroup string
var refreshOwners, refreshRepos bool

func init() {
	reportCmd.Flags().StringVar(&reportSigsYaml, "sigs-yaml", "sigs.yaml", "path to sigs.yaml")
	reportCmd.Flags().StringVar(&ownersYaml, "owners-yaml", "owners.yaml", "path to read/write the parsed owners table")
	reportCmd.Flags().BoolVar(&refreshOwners, "refresh-owners", true, "walk the cloned orgs for OWNERS files; if false just load owners-yaml")
	reportCmd.Flags().StringVar(&repoPath, "repo-path", "/tmp/repo-path", "directory the orgs are cloned under")
	reportCmd.Flags().BoolVar(&refreshRepos, "refresh-repos", false, "re-clone every repo of the given orgs")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "write the annotated sigs.yaml here instead of stdout")
	reportCmd.Flags().StringVar(&defaultGroup, "default-group", "committee-steering", "group that owns the placeholder subproject for unassigned OWNERS files")
	rootCmd.AddCommand(reportCmd)
}

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [org]...",
	Args:  cobra.MinimumNArgs(1),
	Short: "assign every OWNERS file of the given orgs to a subproject and emit an annotated sigs.yaml",
	Long: `Walks every OWNERS and OWNERS_ALIASES file under the cloned orgs into an
owners table (expanding aliases and removing approvers from reviewers),
assigns each OWNERS file to the subproject that declares it or shares the
longest path prefix with one that does, gives everything left over to a
placeholder "unknown" subproject, and prints a sigs.yaml where every
guessed entry carries a comment explaining the guess.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Running script : %s\n", time.Now().Format("01-02-2006 15:04:05"))

		if refreshRepos {
			if err := refreshOrgRepos(args); err != nil {
				panic(err)
			}
		}
		if _, err := os.Stat(filepath.Join(repoPath, "kubernetes", "kubernetes")); err == nil {
			// repos published out of k/k staging share the monorepo aliases
			if err := utils.CopyStagedAliases(repoPath); err != nil {
				panic(err)
			}
		}

		table, err := ownership.LoadTable(ownersYaml)
		if err != nil {
			panic(err)
		}
		if refreshOwners {
			for _, org := range args {
				klog.Infof("finding all OWNERS files in %s", filepath.Join(repoPath, org))
				if err := table.LoadFromDir(filepath.Join(repoPath, org)); err != nil {
					panic(err)
				}
			}
			table.ExpandAll()
		}
		table.PruneDuplicateReviewers()
		if err := table.Save(ownersYaml); err != nil {
			panic(err)
		}

		context, err := utils.GetSigsYaml(reportSigsYaml)
		if err != nil {
			panic(fmt.Errorf("error parsing file: %s - %w", reportSigsYaml, err))
		}
		resolution, err := ownership.Resolve(context, table, defaultGroup)
		if err != nil {
			panic(err)
		}
		reasons := restoreOwnersURIs(resolution)

		var writer io.Writer = os.Stdout
		if reportOutput != "" {
			f, err := os.Create(reportOutput)
			if err != nil {
				panic(err)
			}
			defer f.Close()
			writer = f
		}
		if err := ownership.EncodeAnnotated(writer, context, reasons, 2); err != nil {
			panic(err)
		}
	},
}

func refreshOrgRepos(orgs []string) error {
	for _, org := range orgs {
		if err := os.RemoveAll(filepath.Join(repoPath, org)); err != nil {
			return err
		}
		repos, err := utils.ListOrgRepos(org)
		if err != nil {
			return err
		}
		for _, repo := range repos {
			klog.Infof("cloning %s/%s", org, repo.Name)
			if err := utils.ShallowClone(repo.GitURL, filepath.Join(repoPath, org, repo.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// restoreOwnersURIs converts every resolved owners list back from monorepo
// paths to the raw uri form sigs.yaml uses, rekeying the justifications to
// match the written entries.
func restoreOwnersURIs(resolution *ownership.Resolution) map[string]string {
	reasons := map[string]string{}
	for _, entry := range resolution.Subprojects {
		sp := entry.Subproject
		uris := make([]string, 0, len(sp.Owners))
		for _, path := range sp.Owners {
			uri := ownership.RawGitHubURI(path)
			if reason, ok := resolution.Reasons[path]; ok {
				reasons[uri] = reason
			}
			uris = append(uris, uri)
		}
		sp.Owners = uris
	}
	return reasons
}
