// Package settings decodes HCL configuration files into Go structs.
//
// Expressions may reference environment variables as env.NAME and call a
// small set of string and number functions.
package settings

import (
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Error carries the diagnostics of a failed load.
type Error struct {
	Diags hcl.Diagnostics
	files map[string]*hcl.File
}

func (e *Error) Error() string {
	var sb strings.Builder
	wr := hcl.NewDiagnosticTextWriter(&sb, e.files, 0, false)
	if err := wr.WriteDiagnostics(e.Diags); err != nil {
		return e.Diags.Error()
	}
	return strings.TrimSpace(sb.String())
}

// A Loader parses configuration files and decodes them. Files loaded by
// one Loader are merged in name order.
type Loader struct {
	// Env is exposed as env.NAME. When nil, the process environment is used.
	Env map[string]string

	parser *hclparse.Parser
}

// LoadFiles parses every file and decodes the merged body into target, a
// pointer to a struct with hcl tags.
func (l *Loader) LoadFiles(target any, filenames ...string) error {
	var diags hcl.Diagnostics
	for _, name := range filenames {
		_, d := l.p().ParseHCLFile(name)
		diags = append(diags, d...)
	}
	if diags.HasErrors() {
		return l.fail(diags)
	}
	return l.decode(l.body(), target)
}

// Decode parses src as the contents of filename and decodes it into target.
func (l *Loader) Decode(filename string, src []byte, target any) error {
	f, diags := l.p().ParseHCL(src, filename)
	if diags.HasErrors() {
		return l.fail(diags)
	}
	return l.decode(f.Body, target)
}

// EvalContext returns the variables and functions expressions can use.
func (l *Loader) EvalContext() *hcl.EvalContext {
	env := l.Env
	if env == nil {
		env = environ()
	}
	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vars[k] = cty.StringVal(v)
	}
	envVal := cty.EmptyObjectVal
	if len(vars) > 0 {
		envVal = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

func (l *Loader) decode(body hcl.Body, target any) error {
	if diags := gohcl.DecodeBody(body, l.EvalContext(), target); diags.HasErrors() {
		return l.fail(diags)
	}
	return nil
}

func (l *Loader) p() *hclparse.Parser {
	if l.parser == nil {
		l.parser = hclparse.NewParser()
	}
	return l.parser
}

func (l *Loader) fail(diags hcl.Diagnostics) error {
	return &Error{Diags: diags, files: l.p().Files()}
}

// body returns a merged body of all loaded files.
func (l *Loader) body() hcl.Body {
	files := l.p().Files()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]*hcl.File, len(names))
	for i, name := range names {
		list[i] = files[name]
	}
	return hcl.MergeFiles(list)
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i > 0 && hclIdent(kv[:i]) {
			out[kv[:i]] = kv[i+1:]
		}
	}
	return out
}

// hclIdent reports whether s can be used as an attribute name.
func hclIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return s != ""
}
