package types

import (
	"regexp"
	"strings"

	"github.com/cppbind/cppbind/internal/astprovider"
)

// JSDocRule is one (regex, replacement) conversion rule. The first rule
// whose regex matches the candidate name wins, per §4.2.
type JSDocRule struct {
	Regex   *regexp.Regexp
	Replace string
}

// JSDocTable is an ordered set of conversion rules used to render a C++ type
// name as a best-effort JSDoc type annotation.
type JSDocTable struct {
	Rules []JSDocRule
}

func mustRule(pattern, replace string) JSDocRule {
	return JSDocRule{Regex: regexp.MustCompile(pattern), Replace: replace}
}

// DefaultJSDocTable returns the canonical default conversion table described
// in §4.2: containers, fundamental numeric/boolean types, string-like types,
// void, unique_ptr, and nullptr.
func DefaultJSDocTable() *JSDocTable {
	return &JSDocTable{Rules: []JSDocRule{
		mustRule(`^std::vector$`, `Array.{$1}`),
		mustRule(`^std::map$`, `Object.{$1,$2}`),
		mustRule(`^std::unordered_map$`, `Object.{$1,$2}`),
		mustRule(`^std::unique_ptr$`, `$1`),
		mustRule(`^std::shared_ptr$`, `$1`),
		mustRule(`^(short|int|long|long long|unsigned(?: (short|int|long|long long))?|float|double|long double|size_t|int8_t|int16_t|int32_t|int64_t|uint8_t|uint16_t|uint32_t|uint64_t)$`, `Number`),
		mustRule(`^bool$`, `Boolean`),
		mustRule(`^(std::string|std::string_view|char\s?\*|const char\s?\*)$`, `String`),
		mustRule(`^void$`, `Undefined`),
		mustRule(`^std::nullptr_t$`, `null`),
	}}
}

// Convert applies the table to name, returning (replacement, true) on the
// first match, or (name, false) if nothing matched. The returned replacement
// is the rule's raw template, $1/$2/... placeholders untouched: the
// placeholder-bearing rules (vector, map, unordered_map, unique_ptr,
// shared_ptr) capture no groups, so regexp-driven expansion would only ever
// substitute them with empty strings. jsdocConvert performs the actual
// placeholder substitution against the already-converted template arguments.
func (tbl *JSDocTable) Convert(name string) (string, bool) {
	for _, r := range tbl.Rules {
		if r.Regex.MatchString(name) {
			return r.Replace, true
		}
	}
	return name, false
}

// JSDocTypeName computes the JSDoc type string for this TypeInfo using tbl,
// per §4.2: for a template specialization, first JSDoc-convert each type
// argument, then run the template's outer name through the table, then
// substitute the $1, $2, ... placeholders in the matched replacement with
// the already-converted argument strings. Unmatched names fall back to their
// plain C++ spelling so the stub is still readable, even if not strictly
// valid JSDoc.
func (t TypeInfo) JSDocTypeName(tbl *JSDocTable) string {
	return jsdocConvert(t.resolved(), tbl)
}

func jsdocConvert(ref astprovider.TypeRef, tbl *JSDocTable) string {
	if ref.Kind == astprovider.KindTemplateSpecialization {
		argStrs := make([]string, len(ref.Args))
		for i, a := range ref.Args {
			argStrs[i] = jsdocConvert(a, tbl)
		}
		outer, matched := tbl.Convert(normalizeInlineNamespace(ref.Name))
		if !matched {
			return normalizeInlineNamespace(ref.Name) + "." + strings.Join(argStrs, ",")
		}
		for i, arg := range argStrs {
			outer = strings.ReplaceAll(outer, placeholder(i+1), arg)
		}
		return outer
	}
	plainName := normalizeInlineNamespace(ref.Name)
	if converted, ok := tbl.Convert(plainName); ok {
		return converted
	}
	return plainName
}

func placeholder(n int) string {
	return "$" + string(rune('0'+n))
}
