// Package generator scans directories of static scripts and stylesheets and
// writes Go code that adds them to an hxasset registry.
//
// Each asset gets a handle derived from its path ("admin/app.js" becomes
// "admin-app-js"), a version taken from its content hash, and a URL under a
// configurable prefix. The generated file declares
//
//	func RegisterAssets(ctx context.Context, reg *hxasset.Registry)
package generator

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm/hxasset"
)

// DefaultOutput is the name of the generated file.
const DefaultOutput = "assets_gen.go"

// ErrHandleCollision is returned when two files map to the same handle.
var ErrHandleCollision = errors.New("generator: handle collision")

// Options configures the generator.
type Options struct {
	// DryRun reports what would be written or removed without touching files.
	DryRun bool

	// Package overrides the package name of the generated file. By default
	// the package of existing Go files in the directory is used, falling back
	// to the directory name.
	Package string

	// Prefix is prepended to each asset's relative path. Default "/static/".
	Prefix string

	// Location the assets are added for. Default frontend.
	Location hxasset.Location

	// ScriptsInFooter places every generated script in the footer.
	ScriptsInFooter bool

	// Output is the generated file name. Default DefaultOutput.
	Output string

	// Out receives progress messages. Default os.Stdout.
	Out io.Writer
}

// Generator generates asset registration code.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.Prefix == "" {
		opts.Prefix = "/static/"
	}
	if opts.Location == "" {
		opts.Location = hxasset.LocationFrontend
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate scans each directory recursively and writes its generated file
// into it. Directories without assets are skipped. A trailing "/..." is
// accepted and ignored, since scanning is always recursive.
func (g *Generator) Generate(dirs ...string) error {
	if !g.opts.Location.Valid() {
		return fmt.Errorf("generator: %w: location %q", hxasset.ErrInvalidValue, g.opts.Location)
	}
	for _, dir := range dirs {
		dir = strings.TrimSuffix(dir, "/...")
		if dir == "" {
			dir = "."
		}
		if err := g.generateDir(dir); err != nil {
			return fmt.Errorf("directory %s: %w", dir, err)
		}
	}
	return nil
}

// Clean removes generated files. "dir/..." removes them from every
// directory below dir.
func (g *Generator) Clean(patterns ...string) error {
	dirs, err := g.findDirs(patterns)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := g.cleanDir(dir); err != nil {
			return fmt.Errorf("directory %s: %w", dir, err)
		}
	}
	return nil
}

func (g *Generator) generateDir(dir string) error {
	assets, err := g.Scan(dir)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Fprintf(g.opts.Out, "no assets in %s\n", dir)
		return nil
	}

	pkg := g.opts.Package
	if pkg == "" {
		pkg = g.detectPackage(dir)
	}
	return g.writeFile(dir, pkg, assets)
}

// findDirs resolves patterns to directory paths.
func (g *Generator) findDirs(patterns []string) ([]string, error) {
	var dirs []string
	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			dirs = append(dirs, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

func (g *Generator) cleanDir(dir string) error {
	path := filepath.Join(dir, g.opts.Output)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	fmt.Fprintf(g.opts.Out, "removing %s\n", path)
	if g.opts.DryRun {
		return nil
	}
	return os.Remove(path)
}

// detectPackage returns the package name declared by the Go files in dir,
// or a name derived from the directory.
func (g *Generator) detectPackage(dir string) string {
	pkgs, err := parser.ParseDir(g.fset, dir, func(info fs.FileInfo) bool {
		name := info.Name()
		return !strings.HasSuffix(name, "_test.go") && name != g.opts.Output
	}, parser.PackageClauseOnly)
	if err == nil {
		for name := range pkgs {
			return name
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return packageName(filepath.Base(abs))
}

// packageName turns a directory name into a valid package identifier.
func packageName(base string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if sb.Len() == 0 {
				sb.WriteString("p")
			}
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 || !token.IsIdentifier(sb.String()) || token.IsKeyword(sb.String()) {
		return "assets"
	}
	return sb.String()
}

// skipDir reports whether a directory is never scanned.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" || name == "testdata"
}
