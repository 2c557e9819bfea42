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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	data  map[string]string
	calls int
}

func (f *fakeFetcher) Fetch(uri string) ([]byte, error) {
	f.calls++
	body, ok := f.data[uri]
	if !ok {
		return nil, errors.Errorf("bad status code from %s: 404", uri)
	}
	return []byte(body), nil
}

func TestGetOrFetchStoresFetchedFile(t *testing.T) {
	fetcher := &fakeFetcher{data: map[string]string{
		"https://example.com/OWNERS": "approvers:\n  - alice\n",
	}}
	cache := &OwnersCache{Store: NewMemStore(), Fetcher: fetcher}

	data, missing, err := cache.GetOrFetch("org/repo/OWNERS", "https://example.com/OWNERS")
	require.NoError(t, err)
	assert.False(t, missing)
	assert.Equal(t, "approvers:\n  - alice\npresent: true\n", string(data))

	// second call must come from the store, not the fetcher
	data, missing, err = cache.GetOrFetch("org/repo/OWNERS", "https://example.com/OWNERS")
	require.NoError(t, err)
	assert.False(t, missing)
	assert.Equal(t, "approvers:\n  - alice\npresent: true\n", string(data))
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetOrFetchAppendsNewline(t *testing.T) {
	fetcher := &fakeFetcher{data: map[string]string{
		"https://example.com/OWNERS": "approvers:\n  - alice",
	}}
	cache := &OwnersCache{Store: NewMemStore(), Fetcher: fetcher}

	data, _, err := cache.GetOrFetch("org/repo/OWNERS", "https://example.com/OWNERS")
	require.NoError(t, err)
	assert.Equal(t, "approvers:\n  - alice\npresent: true\n", string(data))
}

func TestGetOrFetchRecordsMissingFile(t *testing.T) {
	fetcher := &fakeFetcher{data: map[string]string{}}
	store := NewMemStore()
	cache := &OwnersCache{Store: store, Fetcher: fetcher}

	data, missing, err := cache.GetOrFetch("org/repo/OWNERS", "https://example.com/OWNERS")
	require.NoError(t, err)
	assert.True(t, missing)
	assert.Equal(t, "present: false\n", string(data))
	assert.Equal(t, "present: false\n", string(store.Data["org/repo/OWNERS"]))

	// the marker document suppresses refetching on later runs
	data, missing, err = cache.GetOrFetch("org/repo/OWNERS", "https://example.com/OWNERS")
	require.NoError(t, err)
	assert.False(t, missing)
	assert.Equal(t, "present: false\n", string(data))
	assert.Equal(t, 1, fetcher.calls)

	owners, err := GetOwnersInfoFromBytes(data)
	require.NoError(t, err)
	assert.False(t, owners.IsPresent())
}

func TestGetOrFetchParsesStoredCopy(t *testing.T) {
	fetcher := &fakeFetcher{data: map[string]string{
		"https://example.com/OWNERS": "approvers:\n  - alice\nreviewers:\n  - bob\n",
	}}
	cache := &OwnersCache{Store: NewMemStore(), Fetcher: fetcher}

	data, _, err := cache.GetOrFetch("org/repo/OWNERS", "https://example.com/OWNERS")
	require.NoError(t, err)

	owners, err := GetOwnersInfoFromBytes(data)
	require.NoError(t, err)
	assert.True(t, owners.IsPresent())
	assert.Equal(t, []string{"alice"}, owners.Approvers)
	assert.Equal(t, []string{"bob"}, owners.Reviewers)
}
