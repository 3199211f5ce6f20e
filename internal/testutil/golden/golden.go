// Package golden compares rendered output with files under testdata/.
// Run tests with -update to rewrite the files from the current output.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var Update = flag.Bool("update", false, "update golden files")

// Assert compares got with testdata/<name>.golden relative to the calling
// test's package directory, rewriting the file first when -update is set.
func Assert(t *testing.T, name, got string) {
	t.Helper()
	safeName(t, name)

	path := filepath.Join("testdata", name+".golden")
	if *Update {
		if err := os.MkdirAll("testdata", 0o750); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if err != nil {
		t.Fatalf("read golden %s: %v (run with -update to create it)", path, err)
	}
	if want := string(data); got != want {
		t.Errorf("output does not match %s\n--- want\n%s\n--- got\n%s", path, want, got)
	}
}

func safeName(t *testing.T, name string) {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
}
