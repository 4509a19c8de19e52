package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/astprovider/fixture"
)

// translationUnitDoc is the JSON descriptor format loadTranslationUnit reads.
// Parsing real C++ is delegated to an external frontend (§1 Non-goals); this
// command accepts a pre-digested JSON form of the same
// RecordDecl/MethodDecl/FieldDecl shapes instead, built through the fixture
// package's in-memory builder. A real deployment would instead link a
// clang-plugin-backed astprovider.Provider in place of this file.
type translationUnitDoc struct {
	Classes []classDoc `json:"classes"`
}

type classDoc struct {
	Name               string      `json:"name"`
	Struct             bool        `json:"struct"`
	Bases              []string    `json:"bases"`
	Annotations        []string    `json:"annotations"`
	InheritsMarkerBase bool        `json:"inherits_marker_base"`
	Abstract           bool        `json:"abstract"`
	DefiningHeader     string      `json:"defining_header"`
	Methods            []methodDoc `json:"methods"`
	Fields             []fieldDoc  `json:"fields"`
	Enums              []enumDoc   `json:"enums"`
}

type methodDoc struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"` // "member" (default), "static", "constructor", "call_operator"
	Virtual     bool       `json:"virtual"`
	Const       bool       `json:"const"`
	ReturnType  typeDoc    `json:"return_type"`
	Params      []paramDoc `json:"params"`
	Annotations []string   `json:"annotations"`
}

type fieldDoc struct {
	Name        string   `json:"name"`
	Type        typeDoc  `json:"type"`
	Annotations []string `json:"annotations"`
}

type enumDoc struct {
	Name     string         `json:"name"`
	Elements []enumValueDoc `json:"elements"`
}

type enumValueDoc struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type typeDoc struct {
	Fundamental  string `json:"fundamental"`
	Record       string `json:"record"`
	PointerDepth int    `json:"pointer_depth"`
}

type paramDoc struct {
	Name string  `json:"name"`
	Type typeDoc `json:"type"`
}

// loadTranslationUnit parses the descriptor at path and replays it into a
// fixture.TranslationUnit, returning the resulting astprovider.Provider.
func loadTranslationUnit(path string) (astprovider.Provider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var doc translationUnitDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	tu := fixture.New()
	records := make(map[string]*fixture.Record, len(doc.Classes))

	for _, c := range doc.Classes {
		var r *fixture.Record
		if c.Struct {
			r = tu.Struct(c.Name)
		} else {
			r = tu.Class(c.Name)
		}
		records[c.Name] = r
	}

	for _, c := range doc.Classes {
		r := records[c.Name]
		r.Annotate(c.Annotations...)
		if c.InheritsMarkerBase {
			r.InheritsMarkerBase()
		}
		if c.Abstract {
			r.Abstract()
		}
		if c.DefiningHeader != "" {
			r.DefiningHeader(c.DefiningHeader)
		}
		for _, baseName := range c.Bases {
			base, ok := records[baseName]
			if !ok {
				return nil, fmt.Errorf("class %s: unknown base %s", c.Name, baseName)
			}
			r.Base(base)
		}
		for _, m := range c.Methods {
			if err := addMethod(r, records, m); err != nil {
				return nil, fmt.Errorf("class %s: method %s: %w", c.Name, m.Name, err)
			}
		}
		for _, f := range c.Fields {
			t, err := resolveType(records, f.Type)
			if err != nil {
				return nil, fmt.Errorf("class %s: field %s: %w", c.Name, f.Name, err)
			}
			r.Field(f.Name, t)
			fields := r.Decl().Fields
			fields[len(fields)-1].Annotations = append(fields[len(fields)-1].Annotations, f.Annotations...)
		}
		for _, e := range c.Enums {
			elems := make([]astprovider.EnumElement, len(e.Elements))
			for i, v := range e.Elements {
				elems[i] = astprovider.EnumElement{Name: v.Name, Value: v.Value}
			}
			r.Enum(e.Name, elems...)
		}
	}

	return tu.Provider(), nil
}

func addMethod(r *fixture.Record, records map[string]*fixture.Record, m methodDoc) error {
	var decl *astprovider.MethodDecl
	switch m.Kind {
	case "", "member":
		decl = r.Method(m.Name)
	case "static":
		decl = r.StaticMethod(m.Name)
	case "constructor":
		decl = r.Constructor()
	case "call_operator":
		decl = r.CallOperator()
	default:
		return fmt.Errorf("unknown method kind %q", m.Kind)
	}

	decl.IsVirtual = m.Virtual
	decl.IsConst = m.Const
	decl.Annotations = append(decl.Annotations, m.Annotations...)

	if m.Kind != "constructor" {
		rt, err := resolveType(records, m.ReturnType)
		if err != nil {
			return fmt.Errorf("return type: %w", err)
		}
		decl.ReturnType = rt
	}

	for _, p := range m.Params {
		t, err := resolveType(records, p.Type)
		if err != nil {
			return fmt.Errorf("param %s: %w", p.Name, err)
		}
		decl.Params = append(decl.Params, fixture.Param(p.Name, t))
	}
	return nil
}

func resolveType(records map[string]*fixture.Record, t typeDoc) (astprovider.TypeRef, error) {
	switch {
	case t.Record != "":
		rec, ok := records[t.Record]
		if !ok {
			return astprovider.TypeRef{}, fmt.Errorf("unknown record type %s", t.Record)
		}
		return fixture.RecordType(rec, t.PointerDepth), nil
	case t.Fundamental != "":
		return fixture.Fundamental(t.Fundamental), nil
	default:
		return fixture.Void(), nil
	}
}
