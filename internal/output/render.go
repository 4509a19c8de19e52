package output

import (
	"bytes"
	"fmt"
	"maps"
	"text/template"

	gcodegen "goa.design/goa/v3/codegen"
)

// renderSections parses and executes each of f's section templates in turn,
// concatenating the output. Grounded on codegen/testhelpers/golden.go's
// FileContent in the teacher repo.
func renderSections(f *gcodegen.File) (string, error) {
	var buf bytes.Buffer
	for _, s := range f.SectionTemplates {
		tmpl := template.New(s.Name)
		fm := template.FuncMap{
			"comment": gcodegen.Comment,
		}
		if s.FuncMap != nil {
			maps.Copy(fm, s.FuncMap)
		}
		tmpl = tmpl.Funcs(fm)
		pt, err := tmpl.Parse(s.Source)
		if err != nil {
			return "", fmt.Errorf("parse section %s of %s: %w", s.Name, f.Path, err)
		}
		var sb bytes.Buffer
		if err := pt.Execute(&sb, s.Data); err != nil {
			return "", fmt.Errorf("execute section %s of %s: %w", s.Name, f.Path, err)
		}
		buf.Write(sb.Bytes())
	}
	return buf.String(), nil
}
