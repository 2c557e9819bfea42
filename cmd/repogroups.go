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
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubernetes-sigs/subprojects/pkg/ownership"
	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

var repoGroupsSigsYaml, repoGroupsSQL string
var validateSigs bool

func init() {
	repoGroupsCmd.Flags().StringVar(&repoGroupsSigsYaml, "sigs-yaml", "sigs.yaml", "path to sigs.yaml")
	repoGroupsCmd.Flags().StringVar(&repoGroupsSQL, "repo-groups-sql", "", "write the gha_repos update batch here if provided")
	repoGroupsCmd.Flags().BoolVar(&validateSigs, "validate-sigs", false, "print repos owned by multiple groups")
	rootCmd.AddCommand(repoGroupsCmd)
}

// repoGroupsCmd represents the repo-groups command
var repoGroupsCmd = &cobra.Command{
	Use:   "repo-groups",
	Short: "derive per-group repository sets from sigs.yaml",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Running script : %s\n", time.Now().Format("01-02-2006 15:04:05"))

		context, err := utils.GetSigsYaml(repoGroupsSigsYaml)
		if err != nil {
			panic(fmt.Errorf("error parsing file: %s - %w", repoGroupsSigsYaml, err))
		}

		if repoGroupsSQL != "" {
			fmt.Printf(">>>>> generating %s\n", repoGroupsSQL)
			f, err := os.Create(repoGroupsSQL)
			if err != nil {
				panic(err)
			}
			if err := ownership.WriteRepoGroupsSQL(f, context); err != nil {
				panic(err)
			}
			if err := f.Close(); err != nil {
				panic(err)
			}
		}

		if validateSigs {
			for _, entry := range ownership.ReposOwnedByMultipleGroups(context) {
				note := ""
				if entry.Shared {
					note = " (expected: known shared repo)"
				}
				fmt.Printf("%s is owned by %d groups (%s)%s\n",
					entry.Repo, len(entry.Groups), strings.Join(entry.Groups, ", "), note)
			}
		}
	},
}
