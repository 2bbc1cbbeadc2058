// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora provides a mechanism for managing test corpora, i.e.,
// a collection of files that define some kind of parser test.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// A corpus describes a test data corpus. This is essentially a way for doing table-driven
// tests where the "table" is in your file system.
type Corpus struct {
	// The root of the test data directory. This path is relative to the file that
	// calls [Corpus.Run].
	Root string

	// An environment variable to check with regards to whether to run in "refresh"
	// mode or not. Its value is a glob matched against test names.
	Refresh string

	// The file extension (without a dot) of files which define a test case,
	// e.g. "build".
	Extension string
	// Possible outputs of the test, which are found using Outputs.Extension.
	// If the file for a particular output is missing, it is implicitly treated
	// as being expected to be empty (i.e., if the file Output[n].Extension
	// specifies does not exist, then Output[n].Compare is passed the empty string
	// as the "want" value).
	Outputs []Output

	// Run executes the test on one test case from the corpus. Returns a slice
	// of strings corresponding to the elements of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Run runs every test case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)
	t.Logf("corpora: searching for files in %q", root)

	// Enumerate the tests to run by globbing the filesystem.
	tests, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension, doublestar.WithFilesOnly())
	if err != nil {
		t.Fatal("corpora: error while stating testdata FS:", err)
	}

	// Check if a refresh has been requested.
	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}

	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	// Execute the tests.
	for _, test := range tests {
		path := filepath.Join(root, filepath.FromSlash(test))
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			bytes, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: error while loading input file %q: %v", path, err)
			}

			results := c.Test(t, name, string(bytes))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refresh, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)

				if refresh {
					c.refresh(t, path, results[i])
					continue
				}

				bytes, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Logf("corpora: error while loading output file %q: %v", path, err)
					t.Fail()
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = defaultCompare
				}
				if err := compare(results[i], string(bytes)); err != "" {
					t.Logf("output mismatch for %q:\n%s", path, err)
					t.Fail()
				}
			}
		})
	}
}

func (c Corpus) refresh(t *testing.T, path, result string) {
	if result == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Logf("corpora: error while deleting output file %q: %v", path, err)
			t.Fail()
		}
		return
	}

	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		t.Logf("corpora: error while writing output file %q: %v", path, err)
		t.Fail()
	}
}

// Output represents the output of a test case.
type Output struct {
	// The extension of the output. This is a suffix to the name of the
	// testcase's main file; so if Corpus.Extension is "build", and this is
	// "stderr", for a test "foo.build" the test runner will look for files
	// named "foo.build.stderr".
	Extension string

	// The comparison function for this output. May be nil, in which case the
	// values will be compared byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns empty string if the strings match, otherwise returns an error message.
type Compare func(got, want string) string

// YAMLCompare compares two YAML documents by value, so that differences in
// quoting or indentation are not reported.
func YAMLCompare(got, want string) string {
	if got == want {
		return ""
	}

	var gotV, wantV any
	if err := yaml.Unmarshal([]byte(got), &gotV); err != nil {
		return fmt.Sprintf("corpora: invalid YAML in output: %v", err)
	}
	if err := yaml.Unmarshal([]byte(want), &wantV); err != nil {
		return fmt.Sprintf("corpora: invalid YAML in expected output: %v", err)
	}
	if cmp.Equal(gotV, wantV) {
		return ""
	}
	return defaultCompare(got, want)
}

var (
	added   = color.New(color.FgHiGreen, color.Bold)
	removed = color.New(color.FgHiRed, color.Bold)
)

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Colorize the diff so it's easier to read. We're looking for lines that
	// start with a - or a +.
	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		if strings.HasPrefix(s, "+") {
			lines[i] = added.Sprint(s)
		} else if strings.HasPrefix(s, "-") {
			lines[i] = removed.Sprint(s)
		}
	}

	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
