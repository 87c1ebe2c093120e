package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type window struct {
	Title  string   `hcl:"title,optional"`
	Width  int      `hcl:"width,optional"`
	VSync  bool     `hcl:"vsync,optional"`
	Target []string `hcl:"targets,optional"`
}

type panel struct {
	Scale float64 `hcl:"scale,optional"`
	Mode  string  `hcl:"mode,optional"`
}

type file struct {
	Window *window `hcl:"window,block"`
	Panel  *panel  `hcl:"panel,block"`
}

func TestDecode(t *testing.T) {
	src := `
window {
  title   = "grove ${upper(env.USER)}"
  width   = max(640, 1280)
  vsync   = true
  targets = ["main", "ui"]
}
`
	l := &Loader{Env: map[string]string{"USER": "ada"}}
	var got file
	if err := l.Decode("test.hcl", []byte(src), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := file{Window: &window{Title: "grove ADA", Width: 1280, VSync: true, Target: []string{"main", "ui"}}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decode: Diff (-got +want)\n%s", diff)
	}
}

func TestDecodeKeepsAbsentBlocks(t *testing.T) {
	l := &Loader{Env: map[string]string{}}
	got := file{Panel: &panel{Scale: 2, Mode: "rounded"}}
	if err := l.Decode("test.hcl", []byte(`window { width = 10 }`), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Panel == nil || got.Panel.Scale != 2 {
		t.Errorf("Panel = %+v, want untouched", got.Panel)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "window {", "on test.hcl line 1"},
		{"unknown attribute", "window {\n  hight = 3\n}", "Unsupported argument"},
		{"type", `window { width = "wide" }`, "Unsuitable value type"},
		{"unknown env", `window { title = env.NOPE }`, "Unsupported attribute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Loader{Env: map[string]string{"HOME": "/"}}
			var f file
			err := l.Decode("test.hcl", []byte(tt.src), &f)
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFilesMerges(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.hcl")
	b := filepath.Join(dir, "b.hcl")
	if err := os.WriteFile(a, []byte(`window { title = "a" }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`panel { scale = 1.5 }`), 0o644); err != nil {
		t.Fatal(err)
	}
	var got file
	if err := (&Loader{Env: map[string]string{}}).LoadFiles(&got, b, a); err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	want := file{Window: &window{Title: "a"}, Panel: &panel{Scale: 1.5}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("LoadFiles: Diff (-got +want)\n%s", diff)
	}

	err := (&Loader{}).LoadFiles(&got, filepath.Join(dir, "missing.hcl"))
	if err == nil {
		t.Error("LoadFiles accepted a missing file")
	}
}

func TestHCLIdent(t *testing.T) {
	for s, want := range map[string]bool{"HOME": true, "_x1": true, "1A": false, "A.B": false, "": false} {
		if got := hclIdent(s); got != want {
			t.Errorf("hclIdent(%q) = %v", s, got)
		}
	}
}
