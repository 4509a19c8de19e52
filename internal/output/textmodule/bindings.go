package textmodule

import (
	"sort"

	gcodegen "goa.design/goa/v3/codegen"

	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/partition"
)

type classRegistration struct {
	ClassName       string
	JSName          string
	HasConstVariant bool // true when extension methods exist (§6: "a const variant when any extension methods exist")
	Constructors    []constructorRegistration
	Methods         []memberRegistration
	// ExposeStaticsNamespace is set when this class has no constructor of its
	// own but does have static methods: class_parser.cpp's register_class
	// (the "no constructor but has a static method" branch) bulk-registers
	// them under a single namespace name instead of one add_static_method
	// call per static, defaulting to the class's own JS name, overridden by
	// EXPOSE_STATIC_METHODS_AS_<name> (§12).
	ExposeStaticsNamespace string
	Statics                []memberRegistration
	DataMembers            []memberRegistration
}

type constructorRegistration struct {
	JSName     string
	ParamTypes []string
}

type memberRegistration struct {
	JSName        string
	QualifiedName string
	IsConst       bool
}

type bindingFileData struct {
	Index             int
	ChainCallName     string
	NextChainCallName string
	Includes          []string
	ExternTemplates   []string
	Classes           []classRegistration
}

const bindingFilePreambleSource = `// Code generated by cppbind. DO NOT EDIT.
//
// This file registers a batch of wrapped classes with the host JavaScript
// runtime. It is one chunk of a chained sequence of such files; see the
// final chaining call at the bottom of this file.

{{range .Includes}}#include {{.}}
{{end}}
{{range .ExternTemplates}}extern template class v8toolkit::WrapperBuilder<{{.}}>;
{{end}}`

const bindingFileBodySource = `{{range .Classes}}
template class v8toolkit::WrapperBuilder<{{.ClassName}}>;
{{if .HasConstVariant}}template class v8toolkit::WrapperBuilder<{{.ClassName}} const>;
{{end}}
void register_{{.JSName}}(v8toolkit::ISOLATE_SCOPE_TYPE isolate) {
    auto & wrapper = v8toolkit::WrapperBuilder<{{.ClassName}}>::get(isolate);
    wrapper.set_class_name("{{.JSName}}");
{{range .Constructors}}    wrapper.add_constructor("{{.JSName}}", {{range .ParamTypes}}{{.}} {{end}});
{{end}}{{range .Methods}}    wrapper.add_method("{{.JSName}}", &{{.QualifiedName}});
{{end}}{{if .ExposeStaticsNamespace}}    wrapper.expose_static_methods("{{.ExposeStaticsNamespace}}", isolate);
{{else}}{{range .Statics}}    wrapper.add_static_method("{{.JSName}}", &{{.QualifiedName}});
{{end}}{{end}}{{range .DataMembers}}    wrapper.add_member{{if .IsConst}}_readonly{{end}}("{{.JSName}}", &{{.QualifiedName}});
{{end}}    wrapper.finalize();
}
{{end}}
void {{.ChainCallName}}(v8toolkit::ISOLATE_SCOPE_TYPE isolate) {
{{range .Classes}}    register_{{.JSName}}(isolate);
{{end}}{{if .NextChainCallName}}    {{.NextChainCallName}}(isolate);
{{end}}}
`

// EmitBindingFile implements output.Module.
func (m *Module) EmitBindingFile(f *partition.File, total int) (*gcodegen.File, error) {
	var includes []string
	for inc := range f.Includes {
		includes = append(includes, inc)
	}
	sort.Strings(includes)

	var externTemplates []string
	for wc := range f.ExternTemplate {
		externTemplates = append(externTemplates, wc.ClassName)
	}
	sort.Strings(externTemplates)

	data := bindingFileData{
		Index:             f.Index,
		ChainCallName:     f.ChainCallName(),
		NextChainCallName: partition.NextChainCallName(f.Index, total),
		Includes:          includes,
		ExternTemplates:   externTemplates,
	}
	for _, wc := range f.Classes {
		data.Classes = append(data.Classes, buildClassRegistration(wc))
	}

	return &gcodegen.File{
		Path: f.Name(),
		SectionTemplates: []*gcodegen.SectionTemplate{
			{Name: "binding-file-preamble", Source: bindingFilePreambleSource, Data: data},
			{Name: "binding-file-body", Source: bindingFileBodySource, Data: data},
		},
	}, nil
}

func buildClassRegistration(wc *model.WrappedClass) classRegistration {
	reg := classRegistration{
		ClassName:       wc.ClassName,
		JSName:          wc.JSName(nil, nil),
		HasConstVariant: len(wc.ExtensionMethods) > 0,
	}
	for _, c := range wc.Constructors {
		var types []string
		for _, p := range c.Parameters {
			types = append(types, p.Type.Name())
		}
		reg.Constructors = append(reg.Constructors, constructorRegistration{JSName: c.JSName(), ParamTypes: types})
	}
	for _, fn := range wc.Members {
		reg.Methods = append(reg.Methods, memberRegistration{JSName: fn.JSName(), QualifiedName: fn.QualifiedName})
	}
	for _, fn := range wc.Statics {
		reg.Statics = append(reg.Statics, memberRegistration{JSName: fn.JSName(), QualifiedName: fn.QualifiedName})
	}
	if len(wc.Constructors) == 0 && len(wc.Statics) > 0 {
		reg.ExposeStaticsNamespace = wc.StaticMethodsNamespace
		if reg.ExposeStaticsNamespace == "" {
			reg.ExposeStaticsNamespace = reg.JSName
		}
	}
	for _, dm := range wc.DataMembers {
		reg.DataMembers = append(reg.DataMembers, memberRegistration{JSName: dm.JSName(), QualifiedName: dm.LongName, IsConst: dm.IsConst})
	}
	return reg
}
