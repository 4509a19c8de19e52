// Package naming implements name sanitization and transformation helpers
// shared by the Class Model and the Partitioner's file-naming. Grounded on
// codegen/naming/naming.go in the teacher repo, which layers a conservative
// filesystem-safe token sanitizer on top of goa.design/goa/v3/codegen's
// identifier-case helpers.
package naming

import (
	"strconv"
	"strings"

	gcodegen "goa.design/goa/v3/codegen"
)

// SanitizeToken converts an arbitrary string into a filesystem-safe token
// used to derive identifiers in generated output (such as the bidirectional
// header guard) from JS/class names. The returned token is lower snake_case,
// contains only [a-z0-9_], never starts/ends with '_', and never contains
// repeated "__". When the sanitized result is empty, SanitizeToken returns
// fallback.
func SanitizeToken(name, fallback string) string {
	s := strings.ToLower(gcodegen.SnakeCase(name))
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	if s == "" {
		return fallback
	}
	return s
}

// StripClassKeyword removes a leading "class " or "struct " keyword from a
// canonical C++ type spelling, per §3.1's class_name contract.
func StripClassKeyword(spelling string) string {
	for _, kw := range []string{"class ", "struct "} {
		if strings.HasPrefix(spelling, kw) {
			return spelling[len(kw):]
		}
	}
	return spelling
}

// SplitQualifiedName splits a canonical, keyword-stripped C++ name into its
// namespace prefix (possibly empty) and its short (innermost) name, per
// §3.1's short_name/namespace_name derivation.
func SplitQualifiedName(qualified string) (namespaceName, shortName string) {
	depth := 0
	lastSplit := -1
	for i, r := range qualified {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ':':
			if depth == 0 && i+1 < len(qualified) && qualified[i+1] == ':' {
				lastSplit = i
			}
		}
	}
	if lastSplit < 0 {
		return "", qualified
	}
	return qualified[:lastSplit], qualified[lastSplit+2:]
}

// IsLegalJSName reports whether name is non-empty and free of the characters
// that §4.5 forbids in a js_name: '<', '>', ':' (template syntax and scope
// operators must be aliased away before they reach a JS identifier).
func IsLegalJSName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, "<>:")
}

// BindingFileName returns the generated binding file name for chunk n
// (1-based), per §6: v8toolkit_generated_class_wrapper_{N}.cpp.
func BindingFileName(n int) string {
	return "v8toolkit_generated_class_wrapper_" + strconv.Itoa(n) + ".cpp"
}

// BidirectionalHeaderName returns the generated bidirectional header name for
// a class whose JS name is jsName, per §6:
// v8toolkit_generated_bidirectional_{JSName}.h.
func BidirectionalHeaderName(jsName string) string {
	return "v8toolkit_generated_bidirectional_" + jsName + ".h"
}

// ChainCallName returns the chaining entry-point function name for binding
// file chunk n, per §4.6: initialize_class_wrappers_N.
func ChainCallName(n int) string {
	return "initialize_class_wrappers_" + strconv.Itoa(n)
}
