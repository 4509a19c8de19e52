package model

// ParseEnums populates wc's Enums vector from its declaration's nested enum
// list, per §4.3's "Parse enums". Idempotent.
func ParseEnums(wc *WrappedClass) {
	if wc.enumsParsed {
		return
	}
	wc.enumsParsed = true

	for _, e := range wc.Decl.Enums {
		enum := &Enum{Name: e.Name}
		for _, el := range e.Elements {
			enum.Elements = append(enum.Elements, EnumElement{Name: el.Name, Value: el.Value})
		}
		wc.Enums = append(wc.Enums, enum)
	}
}
