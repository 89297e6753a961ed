package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsync/internal/config"
	"github.com/dshills/docsync/internal/drift"
	"github.com/dshills/docsync/internal/providers"
)

// fakeGen replays canned responses and records requests.
type fakeGen struct {
	responses []string
	requests  []providers.Request
}

func (f *fakeGen) Complete(_ context.Context, req providers.Request) (providers.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return providers.Response{}, fmt.Errorf("fake: no responses left")
	}
	content := f.responses[0]
	f.responses = f.responses[1:]
	return providers.Response{Content: content, TokensUsed: 1}, nil
}

func (f *fakeGen) Name() string { return "fake" }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Model = "test-model"
	cfg.Cache.Path = filepath.Join(t.TempDir(), "docsync-cache.json")
	return cfg
}

func testTarget(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := "package payments\n\nfunc Charge(amount int) error { return nil }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payments.go"), []byte(src), 0o644))
	return dir
}

const verdictDrift = `{"drift_detected": true, "rationale": "Charge is undocumented"}`
const verdictClean = `{"drift_detected": false, "rationale": "in sync"}`

func TestEngine_CheckMissThenCachedHit(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	gen := &fakeGen{responses: []string{verdictDrift}}
	cache := drift.New(cfg.Cache.MaxSize)
	eng := New(cfg, gen, cache)

	report, err := eng.Check(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, report.Cached)
	assert.True(t, report.Verdict.DriftDetected)
	assert.Equal(t, "Charge is undocumented", report.Verdict.Rationale)
	assert.Len(t, gen.requests, 1)
	assert.Len(t, report.Fingerprint, 64)

	// Same inputs again: served from cache, no provider call.
	report2, err := eng.Check(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, report2.Cached)
	assert.Equal(t, report.Verdict, report2.Verdict)
	assert.Equal(t, report.Fingerprint, report2.Fingerprint)
	assert.Len(t, gen.requests, 1, "cached verdict must not hit the provider")
}

func TestEngine_CachePersistedAfterMiss(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	gen := &fakeGen{responses: []string{verdictClean}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	report, err := eng.Check(context.Background(), target)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	loaded, err := drift.Load(cfg.Cache.Path)
	require.NoError(t, err)
	entry, ok := loaded.Get(report.Fingerprint)
	require.True(t, ok, "verdict persisted to disk")
	assert.False(t, entry.DriftDetected)
}

func TestEngine_CodeChangeChangesFingerprint(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	gen := &fakeGen{responses: []string{verdictClean, verdictDrift}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	first, err := eng.Check(context.Background(), target)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(target, "refunds.go"),
		[]byte("package payments\n\nfunc Refund() {}\n"), 0o644))

	second, err := eng.Check(context.Background(), target)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
	assert.False(t, second.Cached)
	assert.Len(t, gen.requests, 2)
}

func TestEngine_VerdictRepairPass(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	gen := &fakeGen{responses: []string{"Sure! The docs look stale to me.", verdictDrift}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	report, err := eng.Check(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, report.Verdict.DriftDetected)
	require.Len(t, gen.requests, 2)
	assert.Contains(t, gen.requests[1].UserPrompt, "not the required JSON object")
}

func TestEngine_VerdictUnparseableAfterRepair(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	gen := &fakeGen{responses: []string{"nope", "still nope"}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	_, err := eng.Check(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after repair")
}

func TestEngine_FixMergesGeneratedFields(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	docPath := filepath.Join(target, cfg.DocFile)
	prev := "## Purpose\nOld text.\n\n## Runbook\nPage the on-call.\n"
	require.NoError(t, os.WriteFile(docPath, []byte(prev), 0o644))

	fieldsResp := `{"Purpose": "Charges cards.", "Usage": "Call Charge."}`
	gen := &fakeGen{responses: []string{verdictDrift, fieldsResp}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	report, err := eng.Fix(context.Background(), target)
	require.NoError(t, err)
	require.NotEmpty(t, report.Merged)
	assert.Equal(t, docPath, report.DocPath)
	assert.True(t, report.DocExists)

	assert.Contains(t, report.Merged, "## Purpose\nCharges cards.")
	assert.Contains(t, report.Merged, "## Usage\nCall Charge.")
	assert.Contains(t, report.Merged, "## Runbook\nPage the on-call.", "custom section preserved")
	assert.NotContains(t, report.Merged, "Old text.")
	assert.Len(t, gen.requests, 2, "one verdict call, one generation call")
}

func TestEngine_FixSkipsGenerationWhenInSync(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	require.NoError(t, os.WriteFile(filepath.Join(target, cfg.DocFile),
		[]byte("## Purpose\nAccurate.\n"), 0o644))

	gen := &fakeGen{responses: []string{verdictClean}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	report, err := eng.Fix(context.Background(), target)
	require.NoError(t, err)
	assert.Empty(t, report.Merged)
	assert.Len(t, gen.requests, 1, "no generation call when docs are in sync")
}

func TestEngine_FixGeneratesWhenDocMissing(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)

	// Even a clean verdict triggers generation when there is no document.
	gen := &fakeGen{responses: []string{verdictClean, `{"Purpose": "Fresh."}`}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	report, err := eng.Fix(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, report.DocExists)
	assert.Equal(t, "## Purpose\nFresh.\n", report.Merged)
}

func TestEngine_NilCacheDisablesCaching(t *testing.T) {
	cfg := testConfig(t)
	target := testTarget(t)
	gen := &fakeGen{responses: []string{verdictClean, verdictClean}}
	eng := New(cfg, gen, nil)

	first, err := eng.Check(context.Background(), target)
	require.NoError(t, err)
	second, err := eng.Check(context.Background(), target)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.False(t, second.Cached)
	assert.Len(t, gen.requests, 2)
	_, statErr := os.Stat(cfg.Cache.Path)
	assert.True(t, os.IsNotExist(statErr), "no cache file written")
}

func TestEngine_CacheSaveFailureIsAdvisory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Path = filepath.Join(t.TempDir(), "missing", "dir", "cache.json")
	target := testTarget(t)
	gen := &fakeGen{responses: []string{verdictDrift}}
	eng := New(cfg, gen, drift.New(cfg.Cache.MaxSize))

	report, err := eng.Check(context.Background(), target)
	require.NoError(t, err, "an unwritable cache never fails the check")
	assert.True(t, report.Verdict.DriftDetected)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "cache not persisted")
}
