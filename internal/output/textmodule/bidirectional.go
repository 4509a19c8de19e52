package textmodule

import (
	gcodegen "goa.design/goa/v3/codegen"

	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/naming"
)

type virtualOverride struct {
	ReturnType string
	Name       string
	Params     []string
}

type bidirectionalData struct {
	ClassName    string
	JSName       string
	HeaderGuard  string
	VirtualFuncs []virtualOverride
}

const bidirectionalHeaderSource = `#ifndef {{.HeaderGuard}}
#define {{.HeaderGuard}}

// Code generated by cppbind. DO NOT EDIT.
//
// Synthesized subclass of {{.ClassName}} forwarding its virtual methods to
// JavaScript overrides, if present, and to the base implementation
// otherwise.

class JS{{.JSName}} : public {{.ClassName}}, public v8toolkit::JSWrapper<{{.ClassName}}> {
public:
    using {{.ClassName}}::{{.ClassName}};

{{range .VirtualFuncs}}    {{.ReturnType}} {{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p}}{{end}}) override {
        V8TOOLKIT_JS_OVERRIDE_OR_BASE({{.Name}});
    }
{{end}}};

#endif // {{.HeaderGuard}}
`

// EmitBidirectionalHeader implements output.Module. wc is the synthesized
// bidirectional subclass entry the Discovery Driver derives from the
// annotated class on sighting BIDIRECTIONAL_CLASS (§4.4); its unique base is
// that annotated class. The header lists every virtual function of the
// base's own inheritance chain (§6), collected base-first; a function
// declared at several levels is listed once per level, since
// collectVirtuals does not deduplicate. When wc has no
// base on record (e.g. a directly-annotated class with no further
// inheritance), wc itself is used as the base.
func (m *Module) EmitBidirectionalHeader(wc *model.WrappedClass) (*gcodegen.File, error) {
	base := wc
	if len(wc.BaseTypes) > 0 {
		base = wc.BaseTypes[0]
	}
	jsName := base.JSName(nil, nil)
	data := bidirectionalData{
		ClassName:    base.ClassName,
		JSName:       jsName,
		HeaderGuard:  "V8TOOLKIT_GENERATED_BIDIRECTIONAL_" + naming.SanitizeToken(jsName, "class") + "_H",
		VirtualFuncs: collectVirtuals(base),
	}
	return &gcodegen.File{
		Path: naming.BidirectionalHeaderName(jsName),
		SectionTemplates: []*gcodegen.SectionTemplate{
			{Name: "bidirectional-header", Source: bidirectionalHeaderSource, Data: data},
		},
	}, nil
}

// collectVirtuals walks wc's base chain, base-first, gathering every
// virtual member function. Per §9's open question, this core replicates the
// original's observed behavior of wrapping every non-pure virtual it
// encounters rather than deduplicating overrides.
func collectVirtuals(wc *model.WrappedClass) []virtualOverride {
	var chain []*model.WrappedClass
	cur := wc
	for cur != nil {
		chain = append([]*model.WrappedClass{cur}, chain...)
		if len(cur.BaseTypes) == 0 {
			break
		}
		cur = cur.BaseTypes[0]
	}

	var out []virtualOverride
	for _, c := range chain {
		for _, fn := range c.Members {
			if !fn.IsVirtual {
				continue
			}
			var params []string
			for _, p := range fn.Parameters {
				params = append(params, p.Type.Name()+" "+p.Name)
			}
			out = append(out, virtualOverride{
				ReturnType: fn.ReturnType.Name(),
				Name:       fn.Decl.Name,
				Params:     params,
			})
		}
	}
	return out
}
