package docgen

import (
	"fmt"
	"strings"

	"github.com/dshills/docsync/internal/doctmpl"
)

const checkSystemPrompt = `You are a strict technical documentation auditor. You compare source code against its documentation and decide whether the documentation has drifted: whether it no longer accurately reflects what the code does.

Rules:
1. Judge only accuracy, not style or completeness of prose.
2. Missing documentation for significant new behavior counts as drift.
3. Documentation of behavior that no longer exists counts as drift.
4. Be concise: one or two sentences of rationale.

You MUST respond with ONLY a JSON object. No markdown, no explanation, no preamble. Exact structure:
{
  "drift_detected": true,
  "rationale": "Why the documentation does or does not match the code"
}`

// CheckSystemPrompt returns the system prompt for a drift verdict.
func CheckSystemPrompt() string {
	return checkSystemPrompt
}

// BuildCheckPrompt constructs the user prompt for a drift verdict.
func BuildCheckPrompt(code, doc string) string {
	var b strings.Builder
	b.WriteString("Decide whether the documentation below still matches the source code.\n")
	if strings.TrimSpace(doc) == "" {
		b.WriteString("There is no existing documentation; report drift if the code warrants any.\n")
	}
	b.WriteString("\n--- BEGIN SOURCE ---\n")
	b.WriteString(code)
	b.WriteString("\n--- END SOURCE ---\n")
	b.WriteString("\n--- BEGIN DOCUMENTATION ---\n")
	b.WriteString(doc)
	b.WriteString("\n--- END DOCUMENTATION ---\n")
	return b.String()
}

const generateSystemPromptHeader = `You are a precise technical writer. You produce documentation content for a fixed set of named fields from source code.

Rules:
1. Describe what the code actually does; never invent behavior.
2. Plain markdown prose inside field values; no headings, the tool adds them.
3. A field value is either a string or an object mapping entry names to strings.
4. Keep each field under 200 words.

You MUST respond with ONLY a JSON object whose keys are exactly the field names listed below. No markdown fences, no preamble.`

// GenerateSystemPrompt returns the system prompt for content generation,
// enumerating the template's fields.
func GenerateSystemPrompt(tmpl doctmpl.Template) string {
	var b strings.Builder
	b.WriteString(generateSystemPromptHeader)
	b.WriteString("\n\nFields:\n")
	for _, f := range tmpl.Fields {
		fmt.Fprintf(&b, "- %q (rendered as %q)\n", f.Name, f.Heading)
	}
	return b.String()
}

// BuildGeneratePrompt constructs the user prompt for content generation.
// The previous document, when present, gives the model continuity of tone.
func BuildGeneratePrompt(code, previousDoc string) string {
	var b strings.Builder
	b.WriteString("Generate documentation field content for the following source code.\n")
	b.WriteString("\n--- BEGIN SOURCE ---\n")
	b.WriteString(code)
	b.WriteString("\n--- END SOURCE ---\n")
	if strings.TrimSpace(previousDoc) != "" {
		b.WriteString("\nThe previous documentation, for tone and context:\n")
		b.WriteString("\n--- BEGIN PREVIOUS ---\n")
		b.WriteString(previousDoc)
		b.WriteString("\n--- END PREVIOUS ---\n")
	}
	return b.String()
}
