package schema

import (
	_ "embed"
	"encoding/json"

	"github.com/ionutms/schemascope/pkg/errors"
)

// catalog.json is generated from the upstream chart library's schema: one
// entry per explorable type, carrying the constructor parameter names, the
// default value tree, and the documentation location. Regenerate it when
// the upstream schema changes; never edit the derived structure by hand.
//
//go:embed catalog.json
var catalogData []byte

// catalogEntry is the on-disk shape of one catalog entry.
type catalogEntry struct {
	DocPath string                  `json:"doc_path,omitempty"`
	Section string                  `json:"section,omitempty"`
	Params  []string                `json:"params"`
	Fields  map[string]catalogField `json:"fields,omitempty"`
}

// catalogField is the on-disk shape of one property value. Exactly one of
// Value, Tuple, or Fields is set; an empty field decodes as a scalar.
type catalogField struct {
	Value  *string                 `json:"value,omitempty"`
	Tuple  []string                `json:"tuple,omitempty"`
	Fields map[string]catalogField `json:"fields,omitempty"`
}

// Load parses the embedded catalog and returns a fresh Registry. Each call
// returns an independent Registry; there is no package-level instance cache.
func Load() (*Registry, error) {
	return LoadBytes(catalogData)
}

// LoadBytes parses catalog data in the embedded JSON format. Exposed so
// tests and tooling can load alternative catalogs.
func LoadBytes(data []byte) (*Registry, error) {
	var raw map[string]catalogEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog")
	}

	entries := make([]*Entry, 0, len(raw))
	for name, ce := range raw {
		if len(ce.Params) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog entry %q has no constructor parameters", name)
		}
		docPath := ce.DocPath
		if docPath == "" {
			docPath = defaultDocPath(name)
		}
		section := ce.Section
		if section == "" {
			section = docPath
		}
		entries = append(entries, newCatalogEntry(name, docPath, section, ce))
	}
	return NewRegistry(entries...), nil
}

// newCatalogEntry binds an Entry to its raw catalog data. The constructor
// rebuilds the Object on every call so each caller owns its value.
func newCatalogEntry(name, docPath, section string, ce catalogEntry) *Entry {
	return &Entry{
		Name:    name,
		DocPath: docPath,
		Section: section,
		New: func() *Object {
			return NewObject(name, ce.Params, buildFields(ce.Fields))
		},
	}
}

func buildFields(raw map[string]catalogField) map[string]Value {
	if len(raw) == 0 {
		return nil
	}
	fields := make(map[string]Value, len(raw))
	for name, f := range raw {
		fields[name] = buildValue(name, f)
	}
	return fields
}

func buildValue(name string, f catalogField) Value {
	switch {
	case f.Fields != nil:
		return ObjectValue(NewObject(name, nil, buildFields(f.Fields)))
	case f.Tuple != nil:
		return TupleValue(f.Tuple...)
	case f.Value != nil:
		return ScalarValue(*f.Value)
	default:
		return ScalarValue("")
	}
}
