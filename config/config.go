// Package config reads declarative asset files and adds their contents to
// a registry.
//
// Files are YAML (.yaml, .yml) or HCL (.hcl):
//
//	defaults:
//	  version: "1.0"
//	  location: frontend
//	scripts:
//	  - handle: app-js
//	    src: /static/app.js
//	    deps: [htmx]
//	    in_footer: true
//	    enabled_if: logged_in
//	styles:
//	  - handle: theme-css
//	    provider: cdn
//	    media: print
//	    register_only: true
//
// The same file in HCL:
//
//	defaults {
//	  version  = "1.0"
//	  location = "frontend"
//	}
//
//	script "app-js" {
//	  src        = "/static/app.js"
//	  deps       = ["htmx"]
//	  in_footer  = true
//	  enabled_if = "logged_in"
//	}
//
//	style "theme-css" {
//	  provider      = "cdn"
//	  media         = "print"
//	  register_only = true
//	}
//
// enabled_if and provider name Go functions supplied to Apply in Funcs.
package config

import (
	"errors"
	"fmt"

	"github.com/pthm/hxasset"
)

var (
	// ErrInvalidDeclaration is returned for a declaration with missing or bad fields.
	ErrInvalidDeclaration = errors.New("config: invalid asset declaration")
	// ErrUnknownFunc is returned when enabled_if or provider names an unknown function.
	ErrUnknownFunc = errors.New("config: unknown function")
	// ErrUnsupportedFormat is returned for files that are neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	// ErrDuplicateHandle is returned when a handle is declared twice for the same kind and location.
	ErrDuplicateHandle = errors.New("config: duplicate handle")
)

// Defaults apply to every declaration in the same file.
type Defaults struct {
	Version  *string `yaml:"version,omitempty" hcl:"version,optional"`
	Location string  `yaml:"location,omitempty" hcl:"location,optional"`
}

// Declaration is one script or style as written in a file.
type Declaration struct {
	Handle       string   `yaml:"handle" hcl:"handle,label"`
	Src          string   `yaml:"src,omitempty" hcl:"src,optional"`
	Provider     string   `yaml:"provider,omitempty" hcl:"provider,optional"`
	Deps         []string `yaml:"deps,omitempty" hcl:"deps,optional"`
	Version      *string  `yaml:"version,omitempty" hcl:"version,optional"`
	Location     string   `yaml:"location,omitempty" hcl:"location,optional"`
	InFooter     bool     `yaml:"in_footer,omitempty" hcl:"in_footer,optional"`
	Media        string   `yaml:"media,omitempty" hcl:"media,optional"`
	EnabledIf    string   `yaml:"enabled_if,omitempty" hcl:"enabled_if,optional"`
	RegisterOnly bool     `yaml:"register_only,omitempty" hcl:"register_only,optional"`

	// Set by the loader.
	Kind hxasset.Kind `yaml:"-"`
	File string       `yaml:"-"`
}

// File is the decoded form of one asset file.
type File struct {
	Defaults *Defaults     `yaml:"defaults,omitempty" hcl:"defaults,block"`
	Scripts  []Declaration `yaml:"scripts,omitempty" hcl:"script,block"`
	Styles   []Declaration `yaml:"styles,omitempty" hcl:"style,block"`
}

// Config is the merged contents of one or more asset files.
type Config struct {
	// Declarations in load order, with file defaults applied.
	Declarations []Declaration

	// Files that were read, in load order.
	Files []string
}

// VersionString returns the declared version, or hxasset.VersionAuto.
func (d Declaration) VersionString() string {
	if d.Version == nil {
		return hxasset.VersionAuto
	}
	return *d.Version
}

// Source returns "provider:NAME" for provider declarations and the src
// otherwise. It is meant for display.
func (d Declaration) Source() string {
	if d.Provider != "" {
		return "provider:" + d.Provider
	}
	return d.Src
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s: %s %q", d.File, d.Kind, d.Handle)
}

// merge appends f's declarations, applying its defaults.
func (c *Config) merge(name string, f *File) {
	c.Files = append(c.Files, name)

	var def Defaults
	if f.Defaults != nil {
		def = *f.Defaults
	}
	if def.Location == "" {
		def.Location = string(hxasset.LocationFrontend)
	}

	add := func(kind hxasset.Kind, decls []Declaration) {
		for _, d := range decls {
			d.Kind = kind
			d.File = name
			if d.Version == nil {
				d.Version = def.Version
			}
			if d.Location == "" {
				d.Location = def.Location
			}
			if kind == hxasset.KindStyle && d.Media == "" {
				d.Media = string(hxasset.MediaAll)
			}
			c.Declarations = append(c.Declarations, d)
		}
	}
	add(hxasset.KindScript, f.Scripts)
	add(hxasset.KindStyle, f.Styles)
}

// Filter returns the declarations matching kind and location. An empty
// kind or location matches everything.
func (c *Config) Filter(kind hxasset.Kind, location hxasset.Location) []Declaration {
	var out []Declaration
	for _, d := range c.Declarations {
		if kind != "" && d.Kind != kind {
			continue
		}
		if location != "" && hxasset.Location(d.Location) != location {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Validate checks every declaration and returns all problems found, joined.
func (c *Config) Validate() error {
	var errs []error
	type key struct {
		kind     hxasset.Kind
		handle   string
		location string
	}
	seen := make(map[key]string)

	for _, d := range c.Declarations {
		if err := d.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		k := key{d.Kind, d.Handle, d.Location}
		if prev, ok := seen[k]; ok {
			errs = append(errs, fmt.Errorf("%w: %s (first declared in %s)", ErrDuplicateHandle, d, prev))
			continue
		}
		seen[k] = d.File
	}
	return errors.Join(errs...)
}

func (d Declaration) validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDeclaration, d, fmt.Sprintf(format, args...))
	}

	if d.Handle == "" {
		return invalid("missing handle")
	}
	switch {
	case d.Src == "" && d.Provider == "":
		return invalid("one of src or provider is required")
	case d.Src != "" && d.Provider != "":
		return invalid("src and provider are mutually exclusive")
	}
	if _, err := hxasset.ParseLocation(d.Location); err != nil {
		return invalid("%v", err)
	}
	if _, err := hxasset.ParseKind(string(d.Kind)); err != nil {
		return invalid("%v", err)
	}
	switch d.Kind {
	case hxasset.KindScript:
		if d.Media != "" {
			return invalid("media applies to styles only")
		}
	case hxasset.KindStyle:
		if d.InFooter {
			return invalid("in_footer applies to scripts only")
		}
		if _, err := hxasset.ParseMedia(d.Media); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}
