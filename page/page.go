// ABOUTME: Page definitions for the static greeting document: title, heading, markdown body, language.
// ABOUTME: Built-in variants are embedded YAML files; custom pages load from disk with strict field checking.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultVariant is the built-in page served when nothing else is configured.
const DefaultVariant = "hello"

// DefaultLang is used when a definition does not declare a document language.
const DefaultLang = "en"

var (
	// ErrEmptyHeading is returned when a definition has no heading text.
	ErrEmptyHeading = errors.New("page heading must not be empty")

	// ErrUnknownVariant is returned by Builtin for names with no embedded definition.
	ErrUnknownVariant = errors.New("unknown page variant")
)

// Definition describes the content of a static page.
type Definition struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Heading string `yaml:"heading"`
	Body    string `yaml:"body,omitempty"` // markdown
	Lang    string `yaml:"lang,omitempty"`
}

// Normalize trims the definition's fields and fills in defaults. The title
// falls back to the heading and the language to DefaultLang.
func (d Definition) Normalize() (Definition, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Title = strings.TrimSpace(d.Title)
	d.Heading = strings.TrimSpace(d.Heading)
	d.Body = strings.TrimSpace(d.Body)
	d.Lang = strings.TrimSpace(d.Lang)

	if d.Heading == "" {
		return Definition{}, ErrEmptyHeading
	}
	if d.Title == "" {
		d.Title = d.Heading
	}
	if d.Lang == "" {
		d.Lang = DefaultLang
	}
	return d, nil
}

// Parse decodes a YAML page definition. Unknown fields are rejected so that
// typos surface at startup instead of silently rendering a default.
func Parse(data []byte) (Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Definition
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return Definition{}, ErrEmptyHeading
		}
		return Definition{}, fmt.Errorf("decoding page definition: %w", err)
	}
	return d.Normalize()
}

// Load reads and parses a page definition file.
func Load(filename string) (Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Definition{}, fmt.Errorf("reading page definition: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", filename, err)
	}
	if d.Name == "" {
		base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
		d.Name = strings.TrimSuffix(base, path.Ext(base))
	}
	return d, nil
}

// Builtin returns the embedded definition with the given name.
func Builtin(name string) (Definition, error) {
	data, err := fs.ReadFile(definitionsFS, "definitions/"+name+".yaml")
	if err != nil {
		return Definition{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownVariant, name, strings.Join(Variants(), ", "))
	}
	d, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("built-in variant %q: %w", name, err)
	}
	return d, nil
}

// Variants lists the names of the embedded definitions in sorted order.
func Variants() []string {
	entries, err := fs.ReadDir(definitionsFS, "definitions")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
