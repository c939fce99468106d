package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown config format")
	errTrailingData  = errors.New("unexpected data after top-level value")
	errNotDocument   = errors.New("config must be an object or a list of objects")
)

const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Form is the shape of a parsed config document
type Form int

const (
	// FormProject has a toolchain and a list of artifacts
	FormProject Form = iota
	// FormArtifact is a single artifact selecting its compiler by host
	FormArtifact
	// FormArtifactList is a list of host-based artifacts built in order
	FormArtifactList
)

func (f Form) String() string {
	switch f {
	case FormProject:
		return "project"
	case FormArtifact:
		return "artifact"
	case FormArtifactList:
		return "artifact list"
	default:
		return "unknown"
	}
}

// Project is a validated project description
type Project struct {
	Title     string     `toml:"title"`
	Toolchain string     `toml:"toolchain"`
	Artifacts []Artifact `toml:"artifacts"`
}

// Artifact describes one build output
type Artifact struct {
	Title         string   `toml:"title"`
	Type          string   `toml:"type"`
	Files         []string `toml:"files"`
	OutputName    string   `toml:"outputName"`
	Host          string   `toml:"host"`
	OutputPath    string   `toml:"outputPath"`
	CompilerFlags string   `toml:"compilerFlags"`
	LinkerFlags   string   `toml:"linkerFlags"`
	IncludePaths  []string `toml:"includePaths"`
	LibraryPaths  []string `toml:"libraryPaths"`
	Libraries     []string `toml:"libraries"`
}

// Document is a config as parsed, before validation. Raw holds the generic
// decoded value so the validator can inspect the types as written.
type Document struct {
	Form Form
	Raw  any
}

// Project returns the raw top level object of a project document
func (d *Document) Project() map[string]any {
	m, _ := d.Raw.(map[string]any)
	return m
}

// SetToolchain overrides the toolchain of a project document
func (d *Document) SetToolchain(id string) {
	if m := d.Project(); m != nil && d.Form == FormProject {
		m["toolchain"] = id
	}
}

// DetectFormat picks a format from a file extension, defaulting to JSON
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes data in the given format into a Document
func Parse(data []byte, format string) (*Document, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		if err := dec.Decode(new(any)); err != io.EOF {
			return nil, fmt.Errorf("parsing json: %w", errTrailingData)
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				return nil, errors.New(derr.String())
			}
			return nil, err
		}
		raw = m
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	doc := &Document{Raw: raw}
	switch v := raw.(type) {
	case map[string]any:
		_, hasToolchain := v["toolchain"]
		_, hasArtifacts := v["artifacts"]
		if hasToolchain || hasArtifacts {
			doc.Form = FormProject
		} else {
			doc.Form = FormArtifact
		}
	case []any:
		doc.Form = FormArtifactList
	default:
		return nil, errNotDocument
	}
	return doc, nil
}

// Load reads and parses a config file. An empty or "auto" format is
// detected from the file extension.
func Load(path, format string) (*Document, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// decodeSection re-encodes a generic value and decodes it into dst
func decodeSection(data any, dst any) error {
	b, err := toml.Marshal(data)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, dst)
}

// Decode converts a document into a typed Project. Project documents must
// be validated first; artifact documents are decoded as-is and the result
// carries no toolchain.
func (d *Document) Decode() (*Project, error) {
	switch d.Form {
	case FormProject:
		var p Project
		if err := decodeSection(d.Raw, &p); err != nil {
			return nil, fmt.Errorf("decoding project: %w", err)
		}
		return &p, nil
	case FormArtifact:
		var a Artifact
		if err := decodeSection(d.Raw, &a); err != nil {
			return nil, fmt.Errorf("decoding artifact: %w", err)
		}
		return &Project{Title: a.Title, Artifacts: []Artifact{a}}, nil
	case FormArtifactList:
		p := &Project{}
		for i, item := range d.Raw.([]any) {
			var a Artifact
			if err := decodeSection(item, &a); err != nil {
				return nil, fmt.Errorf("decoding artifact %d: %w", i, err)
			}
			p.Artifacts = append(p.Artifacts, a)
		}
		return p, nil
	default:
		return nil, errNotDocument
	}
}
