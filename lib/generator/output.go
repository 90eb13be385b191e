package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pthm/hxasset"
)

// writeFile renders and writes the generated file for dir.
func (g *Generator) writeFile(dir, pkg string, assets []StaticAsset) error {
	outputFile := filepath.Join(dir, g.opts.Output)
	fmt.Fprintf(g.opts.Out, "generating %s (%d assets)\n", outputFile, len(assets))

	if g.opts.DryRun {
		for _, a := range assets {
			fmt.Fprintf(g.opts.Out, "  %s %s %s %s\n", a.Kind, a.Handle, a.Src, a.Version)
		}
		return nil
	}

	code, err := g.render(dir, pkg, assets)
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, code, 0o644)
}

// render returns the formatted source of the generated file.
func (g *Generator) render(dir, pkg string, assets []StaticAsset) ([]byte, error) {
	tmpl, err := template.New("assets").Funcs(template.FuncMap{
		"location": locationIdent,
	}).Parse(assetsTemplate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Package  string
		Dir      string
		Location hxasset.Location
		Footer   bool
		Assets   []StaticAsset
	}{
		Package:  pkg,
		Dir:      filepath.ToSlash(dir),
		Location: g.opts.Location,
		Footer:   g.opts.ScriptsInFooter,
		Assets:   assets,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format source: %w", err)
	}
	return formatted, nil
}

func locationIdent(l hxasset.Location) string {
	if l == hxasset.LocationBackend {
		return "hxasset.LocationBackend"
	}
	return "hxasset.LocationFrontend"
}

const assetsTemplate = `// Code generated by hxasset generate. DO NOT EDIT.

package {{.Package}}

import (
	"context"

	"github.com/pthm/hxasset"
)

// RegisterAssets adds the static assets found in {{.Dir}} to reg.
func RegisterAssets(ctx context.Context, reg *hxasset.Registry) {
{{- range .Assets}}
{{- if eq .Kind "script"}}
	reg.Add(ctx, hxasset.NewScript({{printf "%q" .Handle}}, hxasset.Literal({{printf "%q" .Src}}), nil, {{printf "%q" .Version}}{{if $.Footer}}, hxasset.InFooter(){{end}}), {{location $.Location}})
{{- else}}
	reg.Add(ctx, hxasset.NewStyle({{printf "%q" .Handle}}, hxasset.Literal({{printf "%q" .Src}}), nil, {{printf "%q" .Version}}), {{location $.Location}})
{{- end}}
{{- end}}
}
`
