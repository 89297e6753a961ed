package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/docsync/internal/config"
	"github.com/dshills/docsync/internal/docmerge"
	"github.com/dshills/docsync/internal/drift"
	"github.com/dshills/docsync/internal/providers"
	"github.com/dshills/docsync/internal/scan"
)

// Engine runs drift checks against one provider and one shared drift cache.
// It is safe for concurrent use: the cache locks internally, the merger is
// stateless, and provider clients are plain http.Clients.
type Engine struct {
	cfg    config.Config
	gen    providers.Generator
	cache  *drift.Cache // nil when caching is disabled
	merger *docmerge.Merger
}

// New creates an engine. A nil cache disables caching entirely.
func New(cfg config.Config, gen providers.Generator, cache *drift.Cache) *Engine {
	return &Engine{
		cfg:    cfg,
		gen:    gen,
		cache:  cache,
		merger: docmerge.NewMerger(cfg.DocTemplate(), cfg.SectionLevel),
	}
}

// DocPath returns where the target's documentation file lives: next to a
// file target, inside a directory target.
func (e *Engine) DocPath(target string) string {
	info, err := os.Stat(target)
	if err == nil && !info.IsDir() {
		return filepath.Join(filepath.Dir(target), e.cfg.DocFile)
	}
	return filepath.Join(target, e.cfg.DocFile)
}

// Check produces a drift verdict for target, consulting the cache first.
func (e *Engine) Check(ctx context.Context, target string) (*Report, error) {
	return e.run(ctx, target, false)
}

// Fix produces a drift verdict and, when the documentation is stale or
// missing, regenerates it and returns the merged document in Report.Merged.
// Writing the file back is the caller's job.
func (e *Engine) Fix(ctx context.Context, target string) (*Report, error) {
	return e.run(ctx, target, true)
}

func (e *Engine) run(ctx context.Context, target string, fix bool) (*Report, error) {
	start := time.Now()

	scanRes, err := scan.Collect(target, e.cfg.ScanOptions())
	if err != nil {
		return nil, fmt.Errorf("collecting source: %w", err)
	}
	scanMs := time.Since(start).Milliseconds()

	docPath := e.DocPath(target)
	prevDoc := ""
	docExists := false
	if data, readErr := os.ReadFile(docPath); readErr == nil {
		prevDoc = string(data)
		docExists = true
	}

	report := &Report{
		Target:      target,
		DocPath:     docPath,
		DocExists:   docExists,
		Fingerprint: drift.Fingerprint(scanRes.Content, prevDoc, e.cfg.ModelID()),
		Files:       scanRes.Files,
	}
	if scanRes.Truncated {
		report.Warnings = append(report.Warnings, "scan truncated: source exceeds the total byte cap")
	}

	var llmMs int64

	if e.cache != nil {
		if entry, ok := e.cache.Get(report.Fingerprint); ok {
			report.Cached = true
			report.Verdict = Verdict{DriftDetected: entry.DriftDetected, Rationale: entry.Rationale}
		}
	}

	if !report.Cached {
		llmStart := time.Now()
		verdict, err := e.requestVerdict(ctx, scanRes.Content, prevDoc)
		if err != nil {
			return nil, err
		}
		llmMs += time.Since(llmStart).Milliseconds()
		report.Verdict = verdict

		if e.cache != nil {
			e.cache.Put(report.Fingerprint, drift.Entry{
				Key:           report.Fingerprint,
				DriftDetected: verdict.DriftDetected,
				Rationale:     verdict.Rationale,
			})
			if err := e.cache.Save(e.cfg.Cache.Path); err != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("cache not persisted: %v", err))
			}
		}
	}

	if fix && (report.Verdict.DriftDetected || !docExists) {
		llmStart := time.Now()
		fields, err := e.requestFields(ctx, scanRes.Content, prevDoc)
		if err != nil {
			return nil, err
		}
		llmMs += time.Since(llmStart).Milliseconds()
		report.Merged = e.merger.Merge(prevDoc, fields)
	}

	report.Timing = Timing{
		ScanMs:  scanMs,
		LLMMs:   llmMs,
		TotalMs: time.Since(start).Milliseconds(),
	}
	return report, nil
}

// requestVerdict asks the model for a drift verdict, with one repair pass
// when the response is not the JSON object we demanded.
func (e *Engine) requestVerdict(ctx context.Context, code, prevDoc string) (Verdict, error) {
	resp, err := e.gen.Complete(ctx, providers.Request{
		SystemPrompt: CheckSystemPrompt(),
		UserPrompt:   BuildCheckPrompt(code, prevDoc),
		MaxTokens:    1024,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("provider completion: %w", err)
	}

	verdict, parseErr := ParseVerdict(resp.Content)
	if parseErr == nil {
		return verdict, nil
	}

	resp2, err := e.gen.Complete(ctx, providers.Request{
		SystemPrompt: CheckSystemPrompt(),
		UserPrompt:   repairPrompt(parseErr, resp.Content),
		MaxTokens:    1024,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("repair pass failed: %w (original error: %w)", err, parseErr)
	}
	verdict, parseErr = ParseVerdict(resp2.Content)
	if parseErr != nil {
		return Verdict{}, fmt.Errorf("response validation failed after repair: %w", parseErr)
	}
	return verdict, nil
}

// requestFields asks the model for generated field content, with one repair
// pass.
func (e *Engine) requestFields(ctx context.Context, code, prevDoc string) (docmerge.Fields, error) {
	tmpl := e.cfg.DocTemplate()
	resp, err := e.gen.Complete(ctx, providers.Request{
		SystemPrompt: GenerateSystemPrompt(tmpl),
		UserPrompt:   BuildGeneratePrompt(code, prevDoc),
		MaxTokens:    8192,
	})
	if err != nil {
		return nil, fmt.Errorf("provider completion: %w", err)
	}

	fields, parseErr := ParseFields(resp.Content, tmpl)
	if parseErr == nil {
		return fields, nil
	}

	resp2, err := e.gen.Complete(ctx, providers.Request{
		SystemPrompt: GenerateSystemPrompt(tmpl),
		UserPrompt:   repairPrompt(parseErr, resp.Content),
		MaxTokens:    8192,
	})
	if err != nil {
		return nil, fmt.Errorf("repair pass failed: %w (original error: %w)", err, parseErr)
	}
	fields, parseErr = ParseFields(resp2.Content, tmpl)
	if parseErr != nil {
		return nil, fmt.Errorf("response validation failed after repair: %w", parseErr)
	}
	return fields, nil
}

func repairPrompt(parseErr error, previous string) string {
	return fmt.Sprintf(
		"Your previous response was not the required JSON object. The error was: %s\n\nRespond again with ONLY the valid JSON object.\n\nYour previous response was:\n%s",
		parseErr.Error(), previous,
	)
}
