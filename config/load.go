package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxasset/internal/ctxlog"
)

// Load reads asset files and directories. Directories are walked for
// .yaml, .yml and .hcl files in lexical order; explicitly named files must
// have one of those extensions. Load does not validate; call Validate.
func Load(ctx context.Context, paths ...string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("config: discovered asset files", "count", len(files))

	cfg := &Config{}
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		f, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		cfg.merge(name, f)
	}

	logger.Debug("config: loaded", "files", len(cfg.Files), "declarations", len(cfg.Declarations))
	return cfg, nil
}

// Parse decodes one file; the format is chosen by the extension of name.
func Parse(name string, data []byte) (*File, error) {
	switch formatOf(name) {
	case "yaml":
		return ParseYAML(name, data)
	case "hcl":
		return ParseHCL(name, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// ParseYAML decodes a YAML asset file. Unknown keys are rejected.
func ParseYAML(name string, data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", name, err)
	}
	return &f, nil
}

// ParseHCL decodes an HCL asset file. Unknown blocks and attributes are
// rejected.
func ParseHCL(name string, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
	}

	var f File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}
	return &f, nil
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".hcl":
		return "hcl"
	}
	return ""
}

// findFiles expands paths into a flat, de-duplicated list of asset files.
func findFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if formatOf(path) == "" {
				return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
			}
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && formatOf(p) != "" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return all, nil
}
