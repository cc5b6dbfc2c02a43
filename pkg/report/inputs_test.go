package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waftester/scanreport/pkg/finding"
)

func TestLoadInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zap := filepath.Join(dir, "zap.json")
	nmap := filepath.Join(dir, "nmap.xml")
	require.NoError(t, os.WriteFile(zap, []byte(testZAP), 0o600))
	require.NoError(t, os.WriteFile(nmap, []byte(testNmap), 0o600))

	in, err := LoadInputs(InputPaths{Recon: nmap, Alerts: zap})
	require.NoError(t, err)
	assert.Equal(t, testNmap, string(in.ReconXML))
	assert.Equal(t, testZAP, string(in.AlertsJSON))
	assert.Empty(t, in.InsightJSON)

	h := newHarness(t, nil)
	res, err := h.asm.Generate(context.Background(), in, h.output())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Hosts)
	assert.Equal(t, 4, res.Alerts)
}

func TestLoadInputs_MissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zap := filepath.Join(dir, "zap.json")
	require.NoError(t, os.WriteFile(zap, []byte(testZAP), 0o600))

	in, err := LoadInputs(InputPaths{Alerts: zap, Insight: filepath.Join(dir, "ai.json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, finding.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "AI insight")
	assert.Equal(t, testZAP, string(in.AlertsJSON), "readable payloads are kept")
}
