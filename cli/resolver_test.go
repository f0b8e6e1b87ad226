package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type resolverCLI struct {
	LogLevel  string   `default:"info"`
	OutputDir string   `default:"."`
	Path      []string `name:"path"`
	Width     int      `default:"80"`
	Ratio     float64  `default:"1"`
	Strict    bool
}

func parseWithConfig(t *testing.T, content string, args ...string) resolverCLI {
	t.Helper()

	path := filepath.Join(t.TempDir(), baseConfig)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli resolverCLI

	parser, err := kong.New(&cli, kong.Configuration(resolve, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}

	return cli
}

func TestResolve(t *testing.T) {
	cli := parseWithConfig(t, strings.Join([]string{
		"log-level: debug",
		"output_dir: out",
		"path:",
		"  - a",
		"  - b",
		"width: 120",
		"ratio: 0.5",
		"strict: true",
	}, "\n"))

	if cli.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cli.LogLevel)
	}

	if cli.OutputDir != "out" {
		t.Errorf("OutputDir = %q (underscore key)", cli.OutputDir)
	}

	if !slices.Equal(cli.Path, []string{"a", "b"}) {
		t.Errorf("Path = %q", cli.Path)
	}

	if cli.Width != 120 || cli.Ratio != 0.5 {
		t.Errorf("Width = %d, Ratio = %v", cli.Width, cli.Ratio)
	}

	if !cli.Strict {
		t.Error("Strict = false")
	}
}

func TestResolve_FlagsOverride(t *testing.T) {
	cli := parseWithConfig(t, "log-level: debug\n", "--log-level", "warn")

	if cli.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want flag value", cli.LogLevel)
	}
}

func TestResolve_Malformed(t *testing.T) {
	for _, content := range []string{"", "{{{", "- just\n- a list\n"} {
		cli := parseWithConfig(t, content)

		if cli.LogLevel != "info" || cli.OutputDir != "." {
			t.Errorf("config %q changed defaults: %+v", content, cli)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{int(3), "3"},
		{int64(-4), "-4"},
		{uint64(5), "5"},
		{1.25, "1.25"},
		{"x", "x"},
		{true, true},
	}

	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}

	list, ok := normalize([]any{uint64(1), "two"}).([]any)
	if !ok || list[0] != "1" || list[1] != "two" {
		t.Errorf("normalize(list) = %#v", list)
	}
}
