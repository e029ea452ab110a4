package cliapp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// runSource compiles and runs source, returning stdout/stderr and the exit
// code, the way a golden-fixture test drives the whole pipeline through its
// one public entry point rather than poking at internal stages.
func runSource(t *testing.T, dir, source, stdin string) (stdout, stderr string, code int) {
	t.Helper()
	path := filepath.Join(dir, "input.ra")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	var out, errOut bytes.Buffer
	code = Run(context.Background(), []string{path}, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestGoldenFixtures(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatalf("reading testdata: %v", err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".txtar") {
			continue
		}
		e := e
		t.Run(e.Name(), func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", e.Name()))
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			arc := txtar.Parse(data)
			files := map[string]string{}
			for _, f := range arc.Files {
				files[f.Name] = string(f.Data)
			}
			source, ok := files["input.ra"]
			if !ok {
				t.Fatalf("fixture %s has no input.ra section", e.Name())
			}
			wantStdout := files["stdout"]

			dir := t.TempDir()
			stdout, stderr, code := runSource(t, dir, source, files["stdin"])
			if code != ExitOK {
				t.Fatalf("exit code %d, stderr: %s", code, stderr)
			}
			if stdout != wantStdout {
				t.Errorf("stdout mismatch:\ngot:  %q\nwant: %q", stdout, wantStdout)
			}
		})
	}
}

func TestTypeInferencePinRejected(t *testing.T) {
	dir := t.TempDir()
	source := `a = 1;
func main(): void {
    a = "x";
}
`
	_, stderr, code := runSource(t, dir, source, "")
	if code != ExitCompileErr {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", ExitCompileErr, code, stderr)
	}
	if !strings.Contains(stderr, "A003") {
		t.Errorf("expected a TypeMismatch (A003) diagnostic, got: %s", stderr)
	}
}

func TestDataframeAggregate(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte("x\n1\n2\n3\n4\n"), 0o644); err != nil {
		t.Fatalf("writing csv: %v", err)
	}
	// csvPath is forward-slash safe on every platform this runs on; Raoul
	// string literals have no raw-path escaping beyond \n/\t/\\/\"/\', so a
	// temp dir containing a backslash would need one, which t.TempDir()
	// never produces.
	source := `func main(): void {
    df = read_csv("` + filepath.ToSlash(csvPath) + `");
    print(average(df, "x"));
    print(range(df, "x"));
}
`
	stdout, stderr, code := runSource(t, dir, source, "")
	if code != ExitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	want := "2.5\n3\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestParseArgsUsageError(t *testing.T) {
	if _, err := ParseArgs(nil); err == nil {
		t.Error("expected an error with no source path")
	}
	if _, err := ParseArgs([]string{"--unknown"}); err == nil {
		t.Error("expected an error for an unrecognized flag")
	}
}

func TestParseArgsDebugAndConfig(t *testing.T) {
	opt, err := ParseArgs([]string{"-d", "--config", "raoul.yaml", "prog.ra"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opt.Debug || opt.ConfigPath != "raoul.yaml" || opt.SourcePath != "prog.ra" {
		t.Errorf("unexpected options: %+v", opt)
	}
}
