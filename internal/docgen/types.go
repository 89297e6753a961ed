package docgen

// Verdict is the model's judgment on whether documentation has drifted
// from the code it describes.
type Verdict struct {
	DriftDetected bool   `json:"drift_detected"`
	Rationale     string `json:"rationale"`
}

// Report is the result of one drift check.
type Report struct {
	Target      string   `json:"target"`
	DocPath     string   `json:"docPath"`
	DocExists   bool     `json:"docExists"`
	Fingerprint string   `json:"fingerprint"`
	Cached      bool     `json:"cached"`
	Verdict     Verdict  `json:"verdict"`
	Files       []string `json:"files"`
	Merged      string   `json:"merged,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Timing      Timing   `json:"timing"`
}

// Timing breaks down where a check spent its time.
type Timing struct {
	ScanMs  int64 `json:"scanMs"`
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}
