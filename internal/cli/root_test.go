package cli

import (
	"bytes"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// executeCommandSplit runs a command and captures stdout and stderr separately.
func executeCommandSplit(args ...string) (string, string, error) {
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// isolateEnv points HOME at a temp dir and clears TAXRANK_* variables.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"TAXRANK_YEAR", "TAXRANK_LIMIT", "TAXRANK_DATA_DIR", "TAXRANK_DB"} {
		t.Setenv(k, "")
	}
	return home
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	for _, name := range []string{"config", "verbose"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"report", "load", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected %s subcommand, got %v (%v)", name, cmd, err)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != Version+"\n" {
		t.Errorf("output = %q, want %q", out, Version+"\n")
	}
}

func TestRedactDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"sqlite path untouched", "/tmp/taxrank.db", "/tmp/taxrank.db"},
		{"oracle password hidden", "oracle://scott:tiger@db:1521/XE", "oracle://scott:xxxxx@db:1521/XE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactDSN(tt.dsn); got != tt.want {
				t.Errorf("redactDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}
