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
	"io/ioutil"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kubernetes-sigs/subprojects/pkg/ownership"
	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

var verifySigsYaml, workdir, verifyOutput string

func init() {
	verifyCmd.Flags().StringVar(&verifySigsYaml, "sigs-yaml", "sigs.yaml", "path to sigs.yaml")
	verifyCmd.Flags().StringVar(&workdir, "workdir", "", "directory fetched OWNERS files are cached under (default a fresh temp dir)")
	verifyCmd.Flags().StringVar(&verifyOutput, "output", "", "write the augmented sigs.yaml here; if unset only analyze")
	rootCmd.AddCommand(verifyCmd)
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "check whether every subproject has common approvers, reviewers and labels across its OWNERS files",
	Long: `Fetches every OWNERS file each subproject declares (plus the repo's
OWNERS_ALIASES), expands aliases, and augments each subproject with the
intersection and union of approvers, reviewers and labels across its
files. A well formed subproject has people and labels in the intersection
of all of its OWNERS files; subprojects without are flagged.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Running script : %s\n", time.Now().Format("01-02-2006 15:04:05"))

		context, err := utils.GetSigsYaml(verifySigsYaml)
		if err != nil {
			panic(fmt.Errorf("error parsing file: %s - %w", verifySigsYaml, err))
		}

		if workdir == "" {
			workdir, err = ioutil.TempDir("", "verify-subproject-owners")
			if err != nil {
				panic(err)
			}
		}
		cache := &utils.OwnersCache{
			Store:   &utils.DiskStore{Root: workdir},
			Fetcher: &utils.HTTPFetcher{},
		}

		klog.Info("LOADING....")
		for i := range context.Sigs {
			sig := &context.Sigs[i]
			for j := range sig.Subprojects {
				if err := loadSubprojectOwners(cache, sig, &sig.Subprojects[j]); err != nil {
					panic(err)
				}
			}
		}

		klog.Info("ANALYSIS....")
		for i := range context.Sigs {
			sig := &context.Sigs[i]
			for j := range sig.Subprojects {
				sp := &sig.Subprojects[j]
				id := fmt.Sprintf("%s/%s", sig.Dir, sp.Name)
				common, union, findings := ownership.AnalyzeConsensus(id, sp.Paths)
				sp.Common = common
				sp.Union = union
				for _, finding := range findings {
					if finding.Level == "warning" {
						klog.Warningf("WARNING: %s", finding.Message)
					} else {
						klog.Info(finding.Message)
					}
				}
			}
		}

		if verifyOutput != "" {
			if err := utils.WriteSigsYaml(verifyOutput, context); err != nil {
				panic(err)
			}
		}
	},
}

// loadSubprojectOwners ensures the parsed content of every OWNERS file the
// subproject declares is present under sp.Paths, fetching through the
// cache, expanding aliases and removing duplicate reviewers. Files that
// cannot be fetched stay in the table with present: false.
func loadSubprojectOwners(cache *utils.OwnersCache, sig *utils.Group, sp *utils.Subproject) error {
	klog.Infof("%s/%s", sig.Dir, sp.Name)
	if sp.Paths == nil {
		sp.Paths = map[string]*utils.OwnersInfo{}
	}
	for _, uri := range sp.Owners {
		destFile := ownership.MonorepoPath(uri)
		aliasURI := ownership.AliasURI(uri)
		destAliasFile := ownership.MonorepoPath(aliasURI)

		ownersBytes, missing, err := cache.GetOrFetch(destFile, uri)
		if err != nil {
			return err
		}
		if missing {
			klog.Warning(&ownership.MissingDataError{Path: destFile})
		}
		aliasBytes, missing, err := cache.GetOrFetch(destAliasFile, aliasURI)
		if err != nil {
			return err
		}
		if missing {
			klog.Warning(&ownership.MissingDataError{Path: destAliasFile})
		}

		// lazy caching: keep whatever a previous run already dumped here
		if _, ok := sp.Paths[destFile]; ok {
			continue
		}

		owners, err := utils.GetOwnersInfoFromBytes(ownersBytes)
		if err != nil {
			klog.Warning(&ownership.MalformedDataError{Path: destFile, Err: err})
			owners = &utils.OwnersInfo{}
		}
		ownership.SimplifyFilters(owners)

		var aliases map[string][]string
		if parsed, err := utils.GetAliasesFromBytes(aliasBytes); err != nil {
			klog.Warning(&ownership.MalformedDataError{Path: destAliasFile, Err: err})
		} else {
			aliases = parsed.RepoAliases
		}
		if !owners.Expanded {
			owners.Approvers = ownership.ExpandAliases(owners.Approvers, aliases)
			owners.Reviewers = ownership.ExpandAliases(owners.Reviewers, aliases)
			owners.Expanded = true
		}
		ownership.PruneReviewers(owners)
		sp.Paths[destFile] = owners
	}
	return nil
}
