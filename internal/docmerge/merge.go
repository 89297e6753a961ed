package docmerge

import (
	"sort"
	"strings"

	"github.com/dshills/docsync/internal/doctmpl"
)

// FieldValue is the generated content for one managed field. Either Text or
// Items is set; Items holds named sub-entries (e.g. labeled design
// decisions) that serialize as a list in alphabetical name order.
type FieldValue struct {
	Text  string
	Items map[string]string
}

// Text wraps a plain string field value.
func Text(s string) FieldValue { return FieldValue{Text: s} }

// Items wraps a named-item field value.
func Items(m map[string]string) FieldValue { return FieldValue{Items: m} }

// Fields maps field names to generated content. Emission order comes from
// the template, never from map iteration, so a plain map is sufficient.
type Fields map[string]FieldValue

// Merger rebuilds a document from generated fields while preserving custom
// sections. It holds no mutable state; one Merger may serve concurrent
// merges.
type Merger struct {
	tmpl  doctmpl.Template
	level int
}

// NewMerger returns a Merger for the given template, managing sections at
// sectionLevel (0 selects the default level).
func NewMerger(tmpl doctmpl.Template, sectionLevel int) *Merger {
	if sectionLevel <= 0 {
		sectionLevel = doctmpl.DefaultSectionLevel
	}
	return &Merger{tmpl: tmpl, level: sectionLevel}
}

// Merge applies generated fields onto the previous document text and returns
// the rebuilt document. It never fails: malformed input degrades to
// preserving the previous content whole and appending the managed sections.
//
// Layout of the result: unheaded leading content first (titles, preambles),
// then every template field in canonical order, then all remaining custom
// sections in their original relative order. A custom section whose heading
// collides with a managed heading is replaced by the managed field; managed
// headings are reserved names.
func (m *Merger) Merge(previous string, fields Fields) string {
	doc := Parse(previous, m.tmpl, m.level)

	var b strings.Builder

	// Leading unheaded content stays on top so a merge never pushes a
	// document title below generated sections.
	rest := doc.Sections
	for len(rest) > 0 && rest[0].HeadingLine == "" {
		writeBlock(&b, "", rest[0].Body)
		rest = rest[1:]
	}

	prior := managedBodies(rest)
	for _, f := range m.tmpl.Fields {
		value, ok := fields[f.Name]
		if !ok {
			// No fresh content for this field: carry the previous managed
			// body forward rather than dropping the section.
			prev, had := prior[doctmpl.NormalizeHeading(f.Heading)]
			if !had {
				continue
			}
			value = Text(prev)
		}
		heading := strings.Repeat("#", f.Level) + " " + f.Heading
		writeBlock(&b, heading, renderValue(value))
	}

	for _, sec := range rest {
		if sec.Origin == OriginManaged {
			continue
		}
		writeBlock(&b, sec.HeadingLine, sec.Body)
	}

	out := b.String()
	if out == "" {
		return ""
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// managedBodies indexes the bodies of previously managed sections by
// normalized heading, for carry-forward when a field was not regenerated.
func managedBodies(sections []Section) map[string]string {
	m := make(map[string]string)
	for _, sec := range sections {
		if sec.Origin == OriginManaged {
			m[doctmpl.NormalizeHeading(sec.Heading)] = strings.TrimRight(sec.Body, " \t\r\n")
		}
	}
	return m
}

// renderValue serializes a field value. Named items are emitted as a list
// sorted by name so regeneration order never produces a spurious diff.
func renderValue(v FieldValue) string {
	if len(v.Items) == 0 {
		return v.Text
	}
	names := make([]string, 0, len(v.Items))
	for name := range v.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- **")
		b.WriteString(name)
		b.WriteString("**: ")
		b.WriteString(v.Items[name])
	}
	return b.String()
}

// writeBlock emits one section: optional heading line, right-trimmed body,
// and a blank separator line. Trimming here is what keeps repeated merges
// from accumulating trailing blank lines.
func writeBlock(b *strings.Builder, headingLine, body string) {
	if headingLine != "" {
		b.WriteString(headingLine)
		b.WriteByte('\n')
	}
	body = strings.TrimRight(body, " \t\r\n")
	if body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}
