package schema

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/ctxlog"
)

// ImportAll resolves a document's import_schemas entries relative to the
// document's own location and registers every definition they contain. This
// is the only I/O the front end performs and it must finish before contract
// validation starts. A failed load is returned for the caller to report as a
// validation error; nothing is retried.
func (r *Registry) ImportAll(ctx context.Context, doc *ast.Document) error {
	if len(doc.SchemaImports) == 0 {
		return nil
	}
	baseDir := filepath.Dir(doc.Filename)
	for _, rel := range doc.SchemaImports {
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, rel)
		}
		if err := r.LoadFile(ctx, path); err != nil {
			return fmt.Errorf("import_schemas %q: %w", rel, err)
		}
	}
	return nil
}

// LoadFile loads one schema document. YAML documents are the canonical
// format; .hcl documents with schema blocks are accepted as well.
func (r *Registry) LoadFile(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var defs []*Definition
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		defs, err = parseYAML(src)
	case ".hcl":
		defs, err = parseHCL(src, path)
	default:
		return fmt.Errorf("unsupported schema document format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("parse schema document %s: %w", path, err)
	}

	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return fmt.Errorf("schema document %s: %w", path, err)
		}
	}
	logger.Debug("Schema document loaded.", "path", path, "definitions", len(defs))
	return nil
}

// --- YAML format ---

type yamlFile struct {
	Schemas map[string]yamlEntry `yaml:"schemas"`
}

type yamlEntry struct {
	Type        string                   `yaml:"type"`
	Description string                   `yaml:"description"`
	Attributes  map[string]yamlAttribute `yaml:"attributes"`
}

type yamlAttribute struct {
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Value    any    `yaml:"value"`
}

func parseYAML(src []byte) ([]*Definition, error) {
	var f yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if len(f.Schemas) == 0 {
		return nil, fmt.Errorf("document declares no schemas")
	}

	// Map order is unspecified; sort for deterministic registration errors.
	names := make([]string, 0, len(f.Schemas))
	for n := range f.Schemas {
		names = append(names, n)
	}
	sort.Strings(names)

	defs := make([]*Definition, 0, len(names))
	for _, name := range names {
		entry := f.Schemas[name]
		def := &Definition{
			Name:        name,
			BaseType:    BaseType(entry.Type),
			Description: entry.Description,
			Attributes:  make(map[string]AttributeSpec, len(entry.Attributes)),
		}
		for attrName, attr := range entry.Attributes {
			spec := AttributeSpec{Type: attr.Type, Required: attr.Required}
			if attr.Value != nil {
				v, err := goToCty(attr.Value)
				if err != nil {
					return nil, fmt.Errorf("schema %q attribute %q: %w", name, attrName, err)
				}
				spec.Value = &v
			}
			def.Attributes[attrName] = spec
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func goToCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	default:
		return cty.NilVal, fmt.Errorf("pinned values must be scalars, got %T", v)
	}
}

// --- HCL format ---

type hclSchemaFile struct {
	Schemas []*hclSchemaBlock `hcl:"schema,block"`
}

type hclSchemaBlock struct {
	Name        string              `hcl:"name,label"`
	BaseType    string              `hcl:"base_type"`
	Description string              `hcl:"description,optional"`
	Attributes  []*hclSchemaAttrDef `hcl:"attribute,block"`
}

type hclSchemaAttrDef struct {
	Name     string     `hcl:"name,label"`
	Type     string     `hcl:"type"`
	Required bool       `hcl:"required,optional"`
	Value    *cty.Value `hcl:"value,optional"`
}

func parseHCL(src []byte, filename string) ([]*Definition, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var parsed hclSchemaFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}
	if len(parsed.Schemas) == 0 {
		return nil, fmt.Errorf("document declares no schemas")
	}

	defs := make([]*Definition, 0, len(parsed.Schemas))
	for _, blk := range parsed.Schemas {
		def := &Definition{
			Name:        blk.Name,
			BaseType:    BaseType(blk.BaseType),
			Description: blk.Description,
			Attributes:  make(map[string]AttributeSpec, len(blk.Attributes)),
		}
		for _, attr := range blk.Attributes {
			def.Attributes[attr.Name] = AttributeSpec{
				Type:     attr.Type,
				Required: attr.Required,
				Value:    attr.Value,
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}
