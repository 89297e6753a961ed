package docgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/docsync/internal/docmerge"
	"github.com/dshills/docsync/internal/doctmpl"
)

// stripFences removes a surrounding markdown code fence, which models add
// despite instructions.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}

// ParseVerdict decodes a drift verdict from a model response.
func ParseVerdict(content string) (Verdict, error) {
	var raw struct {
		DriftDetected *bool  `json:"drift_detected"`
		Rationale     string `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		return Verdict{}, fmt.Errorf("invalid JSON object: %w", err)
	}
	if raw.DriftDetected == nil {
		return Verdict{}, fmt.Errorf("missing drift_detected field")
	}
	return Verdict{DriftDetected: *raw.DriftDetected, Rationale: raw.Rationale}, nil
}

// ParseFields decodes generated field content from a model response. Field
// values may be plain strings or objects of named entries. Keys that are
// not template fields are dropped; a response with no usable field at all
// is an error so the repair pass can run.
func ParseFields(content string, tmpl doctmpl.Template) (docmerge.Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}

	fields := make(docmerge.Fields)
	for name, value := range raw {
		if _, ok := tmpl.FieldByName(name); !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(value, &text); err == nil {
			fields[name] = docmerge.Text(text)
			continue
		}
		var items map[string]string
		if err := json.Unmarshal(value, &items); err == nil {
			fields[name] = docmerge.Items(items)
			continue
		}
		return nil, fmt.Errorf("field %q is neither a string nor an object of strings", name)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no usable fields in response")
	}
	return fields, nil
}
