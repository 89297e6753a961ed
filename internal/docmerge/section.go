package docmerge

import (
	"regexp"
	"strings"

	"github.com/dshills/docsync/internal/doctmpl"
)

// Origin classifies who owns a section.
type Origin int

const (
	// OriginCustom marks a human-authored section, preserved verbatim.
	OriginCustom Origin = iota
	// OriginManaged marks a section owned by a template field, always
	// rewritten from the newest generation.
	OriginManaged
)

func (o Origin) String() string {
	if o == OriginManaged {
		return "managed"
	}
	return "custom"
}

// Section is one heading-delimited slice of a document. A section with an
// empty Heading is unheaded content: either the preamble before the first
// section heading or text stranded under a heading at an unexpected level.
type Section struct {
	// Heading is the trimmed heading text, empty for unheaded content.
	Heading string
	// HeadingLine is the original heading line, byte-preserved so custom
	// sections round-trip exactly. Empty for unheaded content.
	HeadingLine string
	// Level is the heading level (number of '#'), 0 for unheaded content.
	Level int
	// Body is the raw content between this heading and the next boundary.
	Body string
	// Origin records whether the section is managed or custom.
	Origin Origin
}

// Document is the transient parsed view of a markdown document. It exists
// only for the duration of one merge.
type Document struct {
	Sections []Section
}

var atxHeading = regexp.MustCompile(`^(#{1,6})(?:\s+(.*?))?\s*$`)

// parseHeading returns the level and trimmed text of an ATX heading line,
// or (0, "") if the line is not a heading.
func parseHeading(line string) (int, string) {
	m := atxHeading.FindStringSubmatch(line)
	if m == nil {
		return 0, ""
	}
	return len(m[1]), strings.TrimSpace(m[2])
}

// isFenceLine reports whether the line opens or closes a fenced code block.
// Markdown allows up to three spaces of indentation before a fence.
func isFenceLine(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// Parse scans a document into sections at the given heading level,
// classifying each against the template. An absent or empty document yields
// an empty section list. Headings inside fenced code blocks are ignored.
func Parse(previous string, tmpl doctmpl.Template, sectionLevel int) Document {
	if sectionLevel <= 0 {
		sectionLevel = doctmpl.DefaultSectionLevel
	}
	if previous == "" {
		return Document{}
	}

	var doc Document
	var body []string
	current := Section{} // unheaded until the first section heading

	flush := func() {
		current.Body = strings.Join(body, "\n")
		// Drop empty unheaded chunks; keep headed sections even when empty.
		if current.HeadingLine != "" || strings.TrimSpace(current.Body) != "" {
			doc.Sections = append(doc.Sections, current)
		}
		body = body[:0]
	}

	inFence := false
	for _, line := range strings.Split(previous, "\n") {
		if isFenceLine(line) {
			inFence = !inFence
			body = append(body, line)
			continue
		}
		if inFence {
			body = append(body, line)
			continue
		}

		level, text := parseHeading(line)
		switch {
		case level == sectionLevel:
			flush()
			origin := OriginCustom
			if tmpl.IsManagedHeading(text) {
				origin = OriginManaged
			}
			current = Section{
				Heading:     text,
				HeadingLine: line,
				Level:       level,
				Origin:      origin,
			}
		case level > 0 && level < sectionLevel:
			// A shallower heading closes the current section but does not
			// open one; it and everything after it until the next section
			// heading is unheaded custom content.
			flush()
			current = Section{}
			body = append(body, line)
		default:
			body = append(body, line)
		}
	}
	flush()

	return doc
}
