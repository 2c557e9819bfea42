/*
Copyright 2021 The Kubernetes Authors.

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
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/boyter/gocodewalker"
	yaml3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

// OWNERS files under vendored trees are not ours to analyze, but a
// top-level vendor/OWNERS (eg: dep-approvers) is.
var vendoredOwnersRegex = regexp.MustCompile(`vendor/.*/OWNERS`)

func GetOwnerAliases(filename string) (*Aliases, error) {
	yamlFile, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := &Aliases{}
	err = yaml.UnmarshalStrict(yamlFile, &config)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func GetAliasesFromBytes(bytes []byte) (*Aliases, error) {
	config := &Aliases{}
	err := yaml.UnmarshalStrict(bytes, &config)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func GetSigsYaml(filename string) (*Context, error) {
	yamlFile, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := &Context{}
	err = yaml.UnmarshalStrict(yamlFile, &config)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// WriteSigsYaml persists the (possibly augmented) sigs.yaml document.
func WriteSigsYaml(filename string, context *Context) error {
	writer, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	encoder := yaml3.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(context); err != nil {
		writer.Close()
		return err
	}
	if err := encoder.Close(); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

func GetOwnersInfo(file string) (*OwnersInfo, error) {
	filename, _ := filepath.Abs(file)
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := GetOwnersInfoFromBytes(bytes)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func GetOwnersInfoFromBytes(bytes []byte) (*OwnersInfo, error) {
	config := &OwnersInfo{}
	err := yaml.UnmarshalStrict(bytes, &config)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func GetOwnersAliasesFile(root string) (string, error) {
	var err error
	aliasPath, _ := filepath.Abs(filepath.Join(root, "OWNERS_ALIASES"))
	if _, err = os.Stat(aliasPath); err == nil {
		return aliasPath, nil
	}
	return "", err
}

// GetOwnerFiles returns every OWNERS and OWNERS_ALIASES file under root,
// sorted, skipping vendored copies. The walk tolerates the symlink loops
// that exist in kubernetes/kubernetes.
func GetOwnerFiles(root string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.IncludeHidden = true
	walker.ExcludeDirectory = []string{".git"}

	errChan := make(chan error)
	go func() {
		errChan <- walker.Start()
		close(errChan)
	}()

	var matches []string
	for f := range fileListQueue {
		base := filepath.Base(f.Location)
		if base != "OWNERS" && base != "OWNERS_ALIASES" {
			continue
		}
		if vendoredOwnersRegex.MatchString(f.Location) {
			continue
		}
		matches = append(matches, f.Location)
	}
	if err := <-errChan; err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func GetSigsYamlFile(root string) (string, error) {
	var err error
	path, _ := filepath.Abs(filepath.Join(root, "sigs.yaml"))
	if _, err = os.Stat(path); err == nil {
		return path, nil
	}
	return "", err
}
