package doctmpl

import "strings"

// DefaultSectionLevel is the heading level at which managed sections live.
const DefaultSectionLevel = 2

// Field is one managed entry in a documentation template.
type Field struct {
	// Name is the generation-side identifier, e.g. "DesignDecisions".
	Name string
	// Heading is the canonical heading text, e.g. "Design Decisions".
	Heading string
	// Level is the markdown heading level (number of '#' characters).
	Level int
}

// Template is an ordered list of managed fields. Order is canonical: the
// merger emits managed sections in exactly this order.
type Template struct {
	Fields []Field
}

// Default returns the built-in documentation template.
func Default() Template {
	return Template{Fields: []Field{
		{Name: "Purpose", Heading: "Purpose", Level: DefaultSectionLevel},
		{Name: "Architecture", Heading: "Architecture", Level: DefaultSectionLevel},
		{Name: "Usage", Heading: "Usage", Level: DefaultSectionLevel},
		{Name: "DesignDecisions", Heading: "Design Decisions", Level: DefaultSectionLevel},
		{Name: "Dependencies", Heading: "Dependencies", Level: DefaultSectionLevel},
	}}
}

// FieldByName returns the field with the given name.
func (t Template) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldByHeading returns the field whose canonical heading matches the given
// heading text under normalization.
func (t Template) FieldByHeading(heading string) (Field, bool) {
	norm := NormalizeHeading(heading)
	for _, f := range t.Fields {
		if NormalizeHeading(f.Heading) == norm {
			return f, true
		}
	}
	return Field{}, false
}

// IsManagedHeading reports whether the heading text is reserved by the
// template.
func (t Template) IsManagedHeading(heading string) bool {
	_, ok := t.FieldByHeading(heading)
	return ok
}

// NormalizeHeading canonicalizes heading text for comparison: trims
// surrounding whitespace, collapses interior runs of whitespace to a single
// space, and lowercases.
func NormalizeHeading(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
