package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArrayFlags(t *testing.T) {
	var flags arrayFlags
	if got := flags.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	for _, v := range []string{"abc", "foo=bar"} {
		if err := flags.Set(v); err != nil {
			t.Errorf("Set(%q) returned error: %v", v, err)
		}
	}
	if got := flags.String(); got != "abc, foo=bar" {
		t.Errorf("String() = %q", got)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out)
	return out.String(), code
}

func TestRun(t *testing.T) {
	words := []string{"-k", "abc", "-k", "foo", "-k", "abs"}
	tests := []struct {
		name     string
		args     []string
		stdin    string
		want     string
		wantCode int
	}{
		{
			name: "pattern",
			args: append(words, "pattern"),
			want: `\b(?:ab[cs]|foo)\b` + "\n",
		},
		{
			name: "pattern substrings",
			args: append(words, "-substrings", "pattern"),
			want: "(?:ab[cs]|foo)\n",
		},
		{
			name: "pattern custom boundary",
			args: append(words, "-boundary", " ", "pattern"),
			want: "(?<= )(?:ab[cs]|foo)(?= )\n",
		},
		{
			name:  "check stdin",
			args:  append(words, "check"),
			stdin: "a foobar\nx ABC y\nnothing\n",
			want:  "x ABC y\n",
		},
		{
			name:     "check nothing listed",
			args:     append(words, "check", "a foobar"),
			want:     "",
			wantCode: exitNotFound,
		},
		{
			name:  "filter deny",
			args:  append(words, "filter"),
			stdin: "good\nabc\nfoobar\n",
			want:  "good\nfoobar\n",
		},
		{
			name: "cleanse allow",
			args: append(words, "-mode", "allow", "-substrings", "cleanse", "good abc foobar"),
			want: "abcfoo\n",
		},
		{
			name: "case-sensitive",
			args: append(words, "-case-sensitive", "cleanse", "ABC abc"),
			want: "ABC \n",
		},
		{
			name: "replace",
			args: []string{"-mode", "replace", "-k", "abc=new1", "-k", "foo=new2", "replace", "ABC ...foo... foobar"},
			want: "new1 ...new2... foobar\n",
		},
		{
			name: "replace count",
			args: []string{"-mode", "replace", "-k", "abc=1", "-count", "2", "replace", "abc abc abc"},
			want: "1 1 abc\n",
		},
		{
			name:     "replace on denylist",
			args:     append(words, "replace", "abc"),
			wantCode: exitError,
		},
		{
			name:     "replace pair without value",
			args:     []string{"-mode", "replace", "-k", "abc", "replace", "abc"},
			wantCode: exitError,
		},
		{
			name:     "unknown command",
			args:     append(words, "frobnicate"),
			wantCode: exitError,
		},
		{
			name:     "unknown engine",
			args:     append(words, "-engine", "pcre", "pattern"),
			wantCode: exitError,
		},
		{
			name:     "re2 rejects look-around",
			args:     append(words, "-engine", "re2", "-boundary", " ", "pattern"),
			wantCode: exitError,
		},
		{
			name:     "no command",
			args:     words,
			wantCode: exitError,
		},
		{
			name:  "repl line mode",
			args:  append(words, "repl"),
			stdin: "a foo\n:add bar\nbar\n:words\n",
			want: "true\ta \n" +
				`\b(?:ab[cs]|bar|foo)\b` + "\n" +
				"true\t\n" +
				"abc\nabs\nbar\nfoo\n",
		},
		{
			name:  "repl stats",
			args:  append(words, "-case-sensitive", "repl"),
			stdin: ":stats\nnothing\na foo\n:stats\n",
			want: "ahocorasick(3): 0 checks, 0 rejected (0.00), active true\n" +
				"false\tnothing\n" +
				"true\ta \n" +
				"ahocorasick(3): 2 checks, 1 rejected (0.50), active true\n",
		},
		{
			name:  "repl stats without prefilter",
			args:  append(words, "repl"),
			stdin: ":stats\n",
			want:  "no prefilter\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, code := runCLI(t, tt.stdin, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (output %q)", code, tt.wantCode, got)
			}
			if tt.wantCode != exitError && got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "replace.yaml")
	doc := "mode: replace\nreplacements: {abc: new1, foo: new2, abs: new3}\nmatch_substrings: true\n"
	if err := os.WriteFile(def, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, code := runCLI(t, "ABS ...foo... foobar\n", "-config", def, "replace")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if want := "new3 ...new2... new2bar\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// flags override the file
	got, _ = runCLI(t, "ABS ...foo... foobar\n", "-config", def, "-substrings=false", "replace")
	if want := "new3 ...new2... foobar\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunKeysFile(t *testing.T) {
	keys := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(keys, []byte("abc\nfoo\n\nabs\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, code := runCLI(t, "", "-keys", keys, "pattern")
	if code != exitOK || got != `\b(?:ab[cs]|foo)\b`+"\n" {
		t.Errorf("pattern = %q (exit %d)", got, code)
	}
}

func TestRunGen(t *testing.T) {
	got, code := runCLI(t, "", "-k", "foo", "-pkg", "words", "-name", "Denied", "gen")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"package words", "DeniedPattern", "regexp2.MustCompile"} {
		if !strings.Contains(got, want) {
			t.Errorf("generated code lacks %q:\n%s", want, got)
		}
	}

	out := filepath.Join(t.TempDir(), "denied.go")
	if _, code := runCLI(t, "", "-k", "foo", "-o", out, "gen"); code != exitOK {
		t.Fatalf("gen -o exit code = %d", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}
