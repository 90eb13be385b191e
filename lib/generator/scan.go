package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm/hxasset"
)

// StaticAsset is a file found by Scan.
type StaticAsset struct {
	Kind    hxasset.Kind
	Path    string // relative to the scanned directory, slash-separated
	Handle  string
	Src     string
	Version string
}

// Scan walks dir for .js and .css files, in lexical order.
func (g *Generator) Scan(dir string) ([]StaticAsset, error) {
	var assets []StaticAsset
	seen := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		kind, ok := kindOf(path)
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		version, err := contentVersion(path)
		if err != nil {
			return err
		}

		a := StaticAsset{
			Kind:    kind,
			Path:    rel,
			Handle:  handleFor(rel, kind),
			Src:     strings.TrimSuffix(g.opts.Prefix, "/") + "/" + rel,
			Version: version,
		}
		key := string(kind) + ":" + a.Handle
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s %q", ErrHandleCollision, prev, rel, kind, a.Handle)
		}
		seen[key] = rel
		assets = append(assets, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func kindOf(path string) (hxasset.Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs":
		return hxasset.KindScript, true
	case ".css":
		return hxasset.KindStyle, true
	}
	return "", false
}

// handleFor derives a handle from a relative path: lowercase, runs of
// characters outside [a-z0-9] collapsed to "-", and a "-js" or "-css"
// suffix. "admin/Edit Page.min.js" becomes "admin-edit-page-min-js".
func handleFor(rel string, kind hxasset.Kind) string {
	name := strings.TrimSuffix(rel, filepath.Ext(rel))

	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	h := strings.TrimSuffix(sb.String(), "-")

	if kind == hxasset.KindStyle {
		return h + "-css"
	}
	return h + "-js"
}

// contentVersion returns the first 8 hex characters of the file's SHA-256.
func contentVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:4]), nil
}
