package textmodule

import (
	gcodegen "goa.design/goa/v3/codegen"

	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/types"
)

type stubParam struct {
	Name string
	Type string
	Doc  string
}

type stubMethod struct {
	Name       string
	Params     []stubParam
	ReturnType string
	ReturnDoc  string
	Doc        string
	IsStatic   bool
}

type stubProperty struct {
	Name     string
	Type     string
	ReadOnly bool
	Doc      string
}

type stubClass struct {
	JSName     string
	Doc        string
	Properties []stubProperty
	Methods    []stubMethod
}

type jsStubData struct {
	Header  string
	Classes []stubClass
}

const jsStubSource = `{{.Header}}
{{range .Classes}}
/**
{{if .Doc}} * {{.Doc}}
{{end}}{{range .Properties}} * @property {{"{"}}{{.Type}}{{"}"}} {{.Name}}{{if .Doc}} - {{.Doc}}{{end}}
{{end}} */
class {{.JSName}} {
{{range .Methods}}    /**
{{if .Doc}}     * {{.Doc}}
{{end}}{{range .Params}}     * @param {{"{"}}{{.Type}}{{"}"}} {{.Name}}{{if .Doc}} - {{.Doc}}{{end}}
{{end}}{{if .ReturnType}}     * @return {{"{"}}{{.ReturnType}}{{"}"}}{{if .ReturnDoc}} {{.ReturnDoc}}{{end}}
{{end}}     */
    {{if .IsStatic}}static {{end}}{{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}}{{end}}) {}

{{end}}}
{{end}}`

// EmitJSStub implements output.Module: one ES-class shell per wrapped,
// non-bidirectional, non-template class (§6).
func (m *Module) EmitJSStub(classes []*model.WrappedClass, header string) (*gcodegen.File, error) {
	data := jsStubData{Header: header}
	for _, wc := range classes {
		if wc.Bidirectional || wc.Decl.IsDependent {
			continue
		}
		data.Classes = append(data.Classes, m.buildStubClass(wc))
	}
	return &gcodegen.File{
		Path: "js-api.js",
		SectionTemplates: []*gcodegen.SectionTemplate{
			{Name: "js-stub", Source: jsStubSource, Data: data},
		},
	}, nil
}

func (m *Module) buildStubClass(wc *model.WrappedClass) stubClass {
	sc := stubClass{JSName: wc.JSName(nil, nil)}
	for _, dm := range wc.DataMembers {
		sc.Properties = append(sc.Properties, stubProperty{
			Name:     dm.JSName(),
			Type:     dm.Type.JSDocTypeName(m.JSDocTable),
			ReadOnly: dm.IsConst,
			Doc:      dm.DocComment,
		})
	}
	for _, fn := range append(append([]*model.ClassFunction{}, wc.Constructors...), wc.Members...) {
		sc.Methods = append(sc.Methods, buildStubMethod(fn, m.JSDocTable))
	}
	for _, fn := range wc.Statics {
		sm := buildStubMethod(fn, m.JSDocTable)
		sm.IsStatic = true
		sc.Methods = append(sc.Methods, sm)
	}
	return sc
}

func buildStubMethod(fn *model.ClassFunction, tbl *types.JSDocTable) stubMethod {
	sm := stubMethod{
		Name: fn.JSName(),
		Doc:  fn.DocComment,
	}
	if !fn.ReturnType.IsVoid() {
		sm.ReturnType = fn.ReturnType.JSDocTypeName(tbl)
		sm.ReturnDoc = fn.ReturnDocComment
	}
	for _, p := range fn.Parameters {
		sm.Params = append(sm.Params, stubParam{
			Name: p.Name,
			Type: p.Type.JSDocTypeName(tbl),
			Doc:  p.DocComment,
		})
	}
	return sm
}
