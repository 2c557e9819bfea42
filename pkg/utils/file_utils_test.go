package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func utilJoinPath(t *testing.T, path string) (string, string) {
	utilsDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("error while get root dir %v", err)
	}
	pkgDir := filepath.Dir(utilsDir)
	root := filepath.Dir(pkgDir)
	testDir := filepath.Join(root, "testdata")
	file := filepath.Join(testDir, path)
	return file, testDir
}

func TestGetOwnersAliases(t *testing.T) {
	file, _ := utilJoinPath(t, "OWNERS_ALIASES")
	testCases := []struct {
		desc          string
		expectedState Aliases
	}{
		{
			desc: "using test OWNERS_ALIASES",
			expectedState: Aliases{
				RepoAliases: map[string][]string{
					"sig1-leads":  {"lead1", "dude2", "guy3"},
					"provider-1":  {"lead1", "dude2"},
					"empty-alias": nil,
				},
			},
		},
	}
	for _, testCase := range testCases {
		result, err := GetOwnerAliases(file)
		if err != nil {
			t.Fatalf("error while get OWNERS_ALIASES for case %s: %v", testCase.desc, err)
		}
		if !reflect.DeepEqual(testCase.expectedState, *result) {
			t.Errorf("unexpected aliases for '%s', expected: %#v, got: %#v",
				testCase.desc,
				testCase.expectedState,
				*result)
		}
	}
}

func TestGetOwnersInfo(t *testing.T) {
	file, _ := utilJoinPath(t, "OWNERS")
	testCases := []struct {
		desc          string
		expectedState OwnersInfo
	}{
		{
			desc: "using test OWNERS file",
			expectedState: OwnersInfo{
				Approvers: []string{"alice", "bob"},
				Reviewers: []string{"alice", "carol"},
				Labels:    []string{"sig/testing"},
			},
		},
	}
	for _, testCase := range testCases {
		result, err := GetOwnersInfo(file)
		if err != nil {
			t.Fatalf("error while get OWNERS for case %v", err)
		}
		if !reflect.DeepEqual(testCase.expectedState, *result) {
			t.Errorf("unexpected OWNERS for '%s', expected: %#v, got: %#v",
				testCase.desc,
				testCase.expectedState,
				*result)
		}
	}
}

func TestGetSigsYaml(t *testing.T) {
	file, _ := utilJoinPath(t, "sigs.yaml")
	testCases := []struct {
		desc          string
		expectedState Context
	}{
		{
			desc: "using test sigs.yaml",
			expectedState: Context{
				Sigs: []Group{
					{
						Dir:              "sig-testing",
						Name:             "Testing",
						MissionStatement: "Covers testing of kubernetes.\n",
						CharterLink:      "charter.md",
						Label:            "testing",
						Leadership: LeadershipGroup{
							Chairs: []Person{
								{GitHub: "alice", Name: "Alice", Company: "ACME"},
							},
						},
						Contact: Contact{
							Slack: "sig-testing",
						},
						Subprojects: []Subproject{
							{
								Name: "core",
								Owners: []string{
									"https://raw.githubusercontent.com/kubernetes/kubernetes/master/pkg/api/OWNERS",
								},
							},
						},
					},
				},
				Committees: []Group{
					{
						Dir:   "committee-steering",
						Name:  "Steering",
						Label: "steering",
						Leadership: LeadershipGroup{
							Chairs: []Person{
								{GitHub: "bob", Name: "Bob", Company: "ACME"},
							},
						},
						Contact: Contact{
							Slack: "steering",
						},
						Subprojects: []Subproject{},
					},
				},
			},
		},
	}
	for _, testCase := range testCases {
		result, err := GetSigsYaml(file)
		if err != nil {
			t.Fatalf("error while get sigs.yaml for case %v", err)
		}
		if !reflect.DeepEqual(testCase.expectedState, *result) {
			t.Errorf("unexpected sigs.yaml for '%s', expected: %#v, got: %#v",
				testCase.desc,
				testCase.expectedState,
				*result)
		}
	}
}

func TestGetOwnerFiles(t *testing.T) {
	_, testDir := utilJoinPath(t, "")
	root := filepath.Join(testDir, "repos", "kubernetes")
	k8s := filepath.Join(root, "kubernetes")
	testInfra := filepath.Join(root, "test-infra")
	testCases := []struct {
		desc          string
		expectedState []string
	}{
		{
			desc: "get OWNERS files",
			expectedState: []string{
				filepath.Join(k8s, "OWNERS"),
				filepath.Join(k8s, "OWNERS_ALIASES"),
				filepath.Join(k8s, "pkg", "api", "OWNERS"),
				filepath.Join(k8s, "vendor", "OWNERS"),
				filepath.Join(testInfra, "OWNERS"),
				filepath.Join(testInfra, "OWNERS_ALIASES"),
			},
		},
	}
	for _, testCase := range testCases {
		result, err := GetOwnerFiles(root)
		if err != nil {
			t.Fatalf("error while get OWNERS files for case %v", err)
		}
		if !reflect.DeepEqual(testCase.expectedState, result) {
			t.Errorf("unexpected list of OWNERS Files for '%s', expected: %#v, got: %#v",
				testCase.desc,
				testCase.expectedState,
				result)
		}
	}
}

func TestGetOwnersAliasesFile(t *testing.T) {
	file, testDir := utilJoinPath(t, "OWNERS_ALIASES")
	testCases := []struct {
		desc          string
		expectedState string
	}{
		{
			desc:          "using test OWNERS_ALIASES",
			expectedState: file,
		},
	}
	for _, testCase := range testCases {
		result, err := GetOwnersAliasesFile(testDir)
		if err != nil {
			t.Fatalf("error while get OWNERS_ALIASES file for case %v", err)
		}
		if !(testCase.expectedState == result) {
			t.Errorf("unexpected OWNERS_ALIASES file for '%s', expected: %#v, got: %#v",
				testCase.desc,
				testCase.expectedState,
				result)
		}
	}
}

func TestSigsYamlFile(t *testing.T) {
	file, testDir := utilJoinPath(t, "sigs.yaml")
	testCases := []struct {
		desc          string
		expectedState string
	}{
		{
			desc:          "using test sigs.yaml",
			expectedState: file,
		},
	}
	for _, testCase := range testCases {
		result, err := GetSigsYamlFile(testDir)
		if err != nil {
			t.Fatalf("error while getting sigs.yaml file for case %v", err)
		}
		if !(testCase.expectedState == result) {
			t.Errorf("unexpected sigs.yaml file for '%s', expected: %#v, got: %#v",
				testCase.desc,
				testCase.expectedState,
				result)
		}
	}
}
