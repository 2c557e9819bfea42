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
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Fetcher retrieves the raw bytes of a remote declaration file.
type Fetcher interface {
	Fetch(uri string) ([]byte, error)
}

// Store is a key-value document store keyed by monorepo path. It backs the
// lazy caching of fetched OWNERS files: a key is written once and then
// reused by every later run against the same store.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
}

// HTTPFetcher fetches files from raw.githubusercontent.com style urls.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(uri string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch %s", uri)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bad status code from %s: %d", uri, resp.StatusCode)
	}
	bytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read from %s", uri)
	}
	// some OWNERS files in the wild contain tabs, which break YAML parsing
	return []byte(strings.ReplaceAll(string(bytes), "\t", " ")), nil
}

// DiskStore keeps one file per key under Root, mirroring the monorepo
// layout (org/repo/path/to/OWNERS).
type DiskStore struct {
	Root string
}

func (s *DiskStore) Get(key string) ([]byte, bool, error) {
	data, err := ioutil.ReadFile(filepath.Join(s.Root, key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *DiskStore) Put(key string, data []byte) error {
	path := filepath.Join(s.Root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

// MemStore is an in-memory Store for tests and one-shot runs.
type MemStore struct {
	Data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{Data: map[string][]byte{}}
}

func (s *MemStore) Get(key string) ([]byte, bool, error) {
	data, ok := s.Data[key]
	return data, ok, nil
}

func (s *MemStore) Put(key string, data []byte) error {
	s.Data[key] = data
	return nil
}

// OwnersCache implements the get-or-fetch contract: return the stored copy
// of key if one exists, otherwise fetch uri and store the result. A failed
// fetch is not fatal: a `present: false` marker document is stored and
// returned instead, with missing=true, so later runs do not refetch and the
// caller can keep going with what is available.
type OwnersCache struct {
	Store   Store
	Fetcher Fetcher
}

func (c *OwnersCache) GetOrFetch(key, uri string) (data []byte, missing bool, err error) {
	data, ok, err := c.Store.Get(key)
	if err != nil {
		return nil, false, errors.Wrapf(err, "unable to read %s from store", key)
	}
	if ok {
		return data, false, nil
	}
	data, fetchErr := c.Fetcher.Fetch(uri)
	if fetchErr != nil {
		data = []byte("present: false\n")
		missing = true
	} else {
		if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
			data = append(data, '\n')
		}
		data = append(data, []byte("present: true\n")...)
	}
	if err := c.Store.Put(key, data); err != nil {
		return nil, false, errors.Wrapf(err, "unable to store %s", key)
	}
	return data, missing, nil
}
