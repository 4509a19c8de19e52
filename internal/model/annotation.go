package model

import (
	"sort"
	"strings"
	"sync"

	"github.com/cppbind/cppbind/internal/astprovider"
)

// AnnotationStore is the process-wide registry of §3.2/§4.1: a mutable map
// from each class-template declaration to its merged annotation set, from
// each record declaration to its own merged annotation set, and from each
// record declaration to its optional typedef-derived name alias. It is
// deliberately a plain mutex-guarded map rather than anything fancier —
// §5 specifies single-threaded, synchronous use, and the mutex (grounded on
// codegen/shared/json_schema.go's schemaLock pattern in the teacher repo)
// only guards against a future caller running two translation units
// concurrently by accident.
type AnnotationStore struct {
	mu                   sync.Mutex
	recordAnnotations    map[*astprovider.RecordDecl]map[string]bool
	templateAnnotations  map[*astprovider.RecordDecl]map[string]bool
	aliases              map[*astprovider.RecordDecl]string
}

// NewAnnotationStore constructs an empty store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		recordAnnotations:   map[*astprovider.RecordDecl]map[string]bool{},
		templateAnnotations: map[*astprovider.RecordDecl]map[string]bool{},
		aliases:             map[*astprovider.RecordDecl]string{},
	}
}

// MergeInto additively unions anns into target's own annotation set (§4.1's
// merge_into contract for record declarations).
func (s *AnnotationStore) MergeInto(target *astprovider.RecordDecl, anns []string) {
	if target == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.recordAnnotations[target]
	if set == nil {
		set = map[string]bool{}
		s.recordAnnotations[target] = set
	}
	for _, a := range anns {
		set[a] = true
	}
}

// MergeTemplateInto additively unions anns into tmpl's template-level
// annotation set, inherited by every specialization whose TemplatePattern is
// tmpl.
func (s *AnnotationStore) MergeTemplateInto(tmpl *astprovider.RecordDecl, anns []string) {
	if tmpl == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.templateAnnotations[tmpl]
	if set == nil {
		set = map[string]bool{}
		s.templateAnnotations[tmpl] = set
	}
	for _, a := range anns {
		set[a] = true
	}
}

// SetAlias records name as the typedef-derived alias for r (§4.4 rule 4,
// triggered by a NAME_ALIAS annotation on the typedef).
func (s *AnnotationStore) SetAlias(r *astprovider.RecordDecl, name string) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[r] = name
}

// AliasFor returns the typedef-derived alias for r, if any.
func (s *AnnotationStore) AliasFor(r *astprovider.RecordDecl) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.aliases[r]
	return name, ok
}

// AnnotationsOf returns the full merged annotation set for r: its own
// AST-attached annotations, any annotations merged directly into its
// registry entry, and — when r is a template specialization — its
// template's merged annotation set (§8 property 7). Order of insertion is
// irrelevant; the result is sorted for deterministic iteration.
func (s *AnnotationStore) AnnotationsOf(r *astprovider.RecordDecl) []string {
	if r == nil {
		return nil
	}
	set := map[string]bool{}
	for _, a := range r.Annotations {
		set[a] = true
	}
	s.mu.Lock()
	for _, a := range keysOf(s.recordAnnotations[r]) {
		set[a] = true
	}
	if r.TemplatePattern != nil {
		for _, a := range keysOf(s.templateAnnotations[r.TemplatePattern]) {
			set[a] = true
		}
	}
	s.mu.Unlock()
	if r.TemplatePattern != nil {
		for _, a := range s.AnnotationsOf(r.TemplatePattern) {
			set[a] = true
		}
	}
	return sortedKeys(set)
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := keysOf(m)
	sort.Strings(out)
	return out
}

// Has reports whether anns contains the exact literal annotation name.
func Has(anns []string, name string) bool {
	for _, a := range anns {
		if a == name {
			return true
		}
	}
	return false
}

// Param extracts the captured tail of a parameterized annotation with the
// given prefix (e.g. Param(anns, "USE_NAME_") on "USE_NAME_foo" returns
// ("foo", true)). Only the first match is returned; callers needing all
// matches (e.g. multiple USE_PIMPL_<field> annotations) should use ParamAll.
func Param(anns []string, prefix string) (string, bool) {
	for _, a := range anns {
		if strings.HasPrefix(a, prefix) {
			return a[len(prefix):], true
		}
	}
	return "", false
}

// ParamAll extracts every captured tail of a parameterized annotation with
// the given prefix.
func ParamAll(anns []string, prefix string) []string {
	var out []string
	for _, a := range anns {
		if strings.HasPrefix(a, prefix) {
			out = append(out, a[len(prefix):])
		}
	}
	return out
}
