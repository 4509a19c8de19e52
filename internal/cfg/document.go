// Package cfg implements the query side of the Annotation & Config Store's
// JSON configuration document (§4.1, §6 of the specification). Loading the
// raw bytes is the "external JSON configuration loader" of §1 — Load here is
// a thin default, not the core's responsibility, but the Document it produces
// and the Get/BulkRenames query contract are in scope.
package cfg

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
)

type (
	// Document is the parsed, schema-validated configuration document. Its
	// zero value is a valid, empty document (every Get returns "no
	// override").
	Document struct {
		raw map[string]any
	}

	// RenameRule is one (regex, replacement) bulk-rename rule. The first
	// rule in a category whose regex matches wins (§4.1, §12 supplemented
	// features).
	RenameRule struct {
		Regex   *regexp.Regexp
		Replace string
	}
)

// Empty returns a Document equivalent to no configuration file having been
// supplied at all.
func Empty() *Document {
	return &Document{}
}

// Load parses r as JSON, validates it against the recognized configuration
// shapes of §6, and returns the resulting Document. A parse failure or a
// schema violation is a structural error (§7): the caller should treat it as
// fatal and abort the run before analyzing any class.
func Load(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	var doc map[string]any
	if err := unmarshalJSON(b, &doc); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile configuration schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Document{raw: doc}, nil
}

// Get resolves a dotted path under classes.<className>, e.g.
// Get("Foo", "members", "int bar()", "name"). It returns (nil, false) when
// any segment of the path is absent, which callers treat as "no override".
func (d *Document) Get(className string, path ...string) (any, bool) {
	if d == nil || d.raw == nil {
		return nil, false
	}
	classes, _ := d.raw["classes"].(map[string]any)
	if classes == nil {
		return nil, false
	}
	cur, ok := classes[className]
	if !ok {
		return nil, false
	}
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ClassNameOverride returns the JS name override configured for className,
// if any (§3.1's highest-priority js_name resolution source).
func (d *Document) ClassNameOverride(className string) (string, bool) {
	v, ok := d.Get(className, "name")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MemberSkip reports whether className's member identified by key (a
// signature string for methods, a long name for fields) is explicitly
// flagged skip: true/false. The bool result reports whether an explicit
// override was found at all.
func (d *Document) MemberSkip(className, key string) (skip bool, explicit bool) {
	v, ok := d.Get(className, "members", key, "skip")
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// MemberNameOverride returns the JS name override configured for a specific
// member of className, if any.
func (d *Document) MemberNameOverride(className, key string) (string, bool) {
	v, ok := d.Get(className, "members", key, "name")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// BindingsMaxDeclarationsPerFile returns the configured
// output_modules.BindingsOutputModule.max_declarations_per_file, or (0,
// false) if unset. Zero means "unlimited" per §4.6.
func (d *Document) BindingsMaxDeclarationsPerFile() (int, bool) {
	if d == nil || d.raw == nil {
		return 0, false
	}
	om, _ := d.raw["output_modules"].(map[string]any)
	bom, _ := om["BindingsOutputModule"].(map[string]any)
	v, ok := bom["max_declarations_per_file"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// JSStubHeader returns the configured
// output_modules.JavaScriptStubOutputModule.header, or ("", false) if unset.
func (d *Document) JSStubHeader() (string, bool) {
	if d == nil || d.raw == nil {
		return "", false
	}
	om, _ := d.raw["output_modules"].(map[string]any)
	jsm, _ := om["JavaScriptStubOutputModule"].(map[string]any)
	v, ok := jsm["header"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// BulkRenames returns the ordered list of rename rules configured for
// category (e.g. "static_functions"), compiling each regex eagerly. A
// malformed regex is silently skipped, matching the original's tolerant
// bulk-rename handling: a rule that cannot be compiled simply never matches.
func (d *Document) BulkRenames(category string) []RenameRule {
	if d == nil || d.raw == nil {
		return nil
	}
	br, _ := d.raw["bulk_renames"].(map[string]any)
	entries, _ := br[category].([]any)
	rules := make([]RenameRule, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		pattern, _ := m["regex"].(string)
		replace, _ := m["replace"].(string)
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		rules = append(rules, RenameRule{Regex: re, Replace: replace})
	}
	return rules
}

// Apply returns the first rule's substitution applied to name if any rule in
// rules matches, and whether a rule matched at all.
func Apply(rules []RenameRule, name string) (string, bool) {
	for _, r := range rules {
		if r.Regex.MatchString(name) {
			return r.Regex.ReplaceAllString(name, r.Replace), true
		}
	}
	return name, false
}

func unmarshalJSON(b []byte, v any) error {
	return json.Unmarshal(b, v)
}
