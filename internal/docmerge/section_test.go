package docmerge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsync/internal/doctmpl"
)

func testTemplate(names ...string) doctmpl.Template {
	t := doctmpl.Template{}
	for _, n := range names {
		t.Fields = append(t.Fields, doctmpl.Field{Name: n, Heading: n, Level: 2})
	}
	return t
}

func TestParse_EmptyDocument(t *testing.T) {
	doc := Parse("", testTemplate("Purpose"), 2)
	assert.Empty(t, doc.Sections)
}

func TestParse_Sections(t *testing.T) {
	input := "## Purpose\nOld\n\n## Notes\nKeep me\n"
	doc := Parse(input, testTemplate("Purpose"), 2)

	want := []Section{
		{Heading: "Purpose", HeadingLine: "## Purpose", Level: 2, Body: "Old\n", Origin: OriginManaged},
		{Heading: "Notes", HeadingLine: "## Notes", Level: 2, Body: "Keep me\n", Origin: OriginCustom},
	}
	if diff := cmp.Diff(want, doc.Sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PreambleBeforeFirstSection(t *testing.T) {
	input := "# Title\n\nIntro paragraph.\n\n## Purpose\nBody\n"
	doc := Parse(input, testTemplate("Purpose"), 2)

	require.Len(t, doc.Sections, 2)
	assert.Empty(t, doc.Sections[0].Heading)
	assert.Equal(t, OriginCustom, doc.Sections[0].Origin)
	assert.Contains(t, doc.Sections[0].Body, "# Title")
	assert.Contains(t, doc.Sections[0].Body, "Intro paragraph.")
	assert.Equal(t, "Purpose", doc.Sections[1].Heading)
}

func TestParse_DeeperHeadingsStayInBody(t *testing.T) {
	input := "## Usage\nIntro\n### Subsection\nDetail\n"
	doc := Parse(input, testTemplate("Usage"), 2)

	require.Len(t, doc.Sections, 1)
	assert.Contains(t, doc.Sections[0].Body, "### Subsection")
}

func TestParse_ShallowerHeadingClosesSection(t *testing.T) {
	input := "## Purpose\nBody\n# Stray Title\nOrphan text\n## Notes\nN\n"
	doc := Parse(input, testTemplate("Purpose"), 2)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "Purpose", doc.Sections[0].Heading)
	assert.Empty(t, doc.Sections[1].Heading, "stray block is unheaded custom content")
	assert.Contains(t, doc.Sections[1].Body, "# Stray Title")
	assert.Contains(t, doc.Sections[1].Body, "Orphan text")
	assert.Equal(t, "Notes", doc.Sections[2].Heading)
}

func TestParse_HeadingInsideFenceIgnored(t *testing.T) {
	input := "## Usage\n```sh\n## not a heading\n```\nAfter\n"
	doc := Parse(input, testTemplate("Usage"), 2)

	require.Len(t, doc.Sections, 1)
	assert.Contains(t, doc.Sections[0].Body, "## not a heading")
}

func TestParse_NoHeadingsAtAll(t *testing.T) {
	input := "Just prose.\nMore prose.\n"
	doc := Parse(input, testTemplate("Purpose"), 2)

	require.Len(t, doc.Sections, 1)
	assert.Empty(t, doc.Sections[0].Heading)
	assert.Equal(t, OriginCustom, doc.Sections[0].Origin)
	assert.Equal(t, "Just prose.\nMore prose.\n", doc.Sections[0].Body)
}

func TestParse_NormalizedHeadingMatch(t *testing.T) {
	input := "##   design   DECISIONS  \nbody\n"
	tmpl := doctmpl.Template{Fields: []doctmpl.Field{
		{Name: "DesignDecisions", Heading: "Design Decisions", Level: 2},
	}}
	doc := Parse(input, tmpl, 2)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, OriginManaged, doc.Sections[0].Origin)
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		line      string
		wantLevel int
		wantText  string
	}{
		{"## Purpose", 2, "Purpose"},
		{"# Title", 1, "Title"},
		{"###### Deep", 6, "Deep"},
		{"####### TooDeep", 0, ""},
		{"##No space", 0, ""},
		{"##", 2, ""},
		{"  ## indented", 0, ""},
		{"plain text", 0, ""},
		{"## Trailing   ", 2, "Trailing"},
	}
	for _, tt := range tests {
		level, text := parseHeading(tt.line)
		assert.Equal(t, tt.wantLevel, level, "level of %q", tt.line)
		assert.Equal(t, tt.wantText, text, "text of %q", tt.line)
	}
}
