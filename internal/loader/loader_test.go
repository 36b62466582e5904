package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packFixture = `package mypack

import (
	"context"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

type NoFmtRule struct{}

func (r *NoFmtRule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: "NO-FMT", Severity: model.SeverityLow, Enabled: true}
}

func (r *NoFmtRule) Validate(ctx context.Context, sctx *semantic.SourceContext) ([]model.Violation, error) {
	return nil, nil
}
`

func writePack(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nofmt.go"), []byte(packFixture), 0o644))
}

func TestDiscoverFindsRuleTypes(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir)
	// test files and sources without the engine import are not candidates
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nofmt_test.go"), []byte(packFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.go"), []byte("package mypack\n\nfunc helper() {}\n"), 0o644))

	d, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, d.Files, 1)
	assert.Equal(t, []string{"NoFmtRule"}, d.TypeNames)
}

func TestDiscoverEmptyDir(t *testing.T) {
	d, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, d.Files)
	assert.Empty(t, d.TypeNames)
}

func TestLoadWithoutCandidates(t *testing.T) {
	l := New(Options{EngineDir: t.TempDir()}, nil)
	_, err := l.Load(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRegistrarGeneratesEntrypoint(t *testing.T) {
	src := string(registrar([]string{"NoFmtRule", "NamingRule"}))
	assert.Contains(t, src, "package main")
	assert.Contains(t, src, "func SmithRules() []rules.Rule {")
	assert.Contains(t, src, "new(NoFmtRule),")
	assert.Contains(t, src, "new(NamingRule),")
}

func TestManifestRequiresAndReplacesHost(t *testing.T) {
	l := New(Options{EngineDir: "/src/engine"}, nil)
	b, err := l.manifest()
	require.NoError(t, err)
	manifest := string(b)
	assert.Contains(t, manifest, HostModule)
	assert.Contains(t, manifest, "/src/engine")
	assert.Contains(t, manifest, "go 1.22")
}

func TestMaterializeRewritesPackageClause(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir)
	d, err := Discover(dir)
	require.NoError(t, err)

	scratch := t.TempDir()
	l := New(Options{EngineDir: "/src/engine"}, nil)
	require.NoError(t, l.materialize(scratch, d))

	b, err := os.ReadFile(filepath.Join(scratch, "rule_00_nofmt.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "package main\n"))
	assert.NotContains(t, string(b), "package mypack")

	_, err = os.Stat(filepath.Join(scratch, "registrar.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(scratch, "go.mod"))
	assert.NoError(t, err)
}

func TestFindArtifactPrefersPackAndSkipsDebugBundles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plugin.dSYM"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.dSYM", "inner.so"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.so"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pack.so"), []byte("x"), 0o644))

	got, err := findArtifact(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pack.so"), got)
}

func TestFindArtifactMissing(t *testing.T) {
	_, err := findArtifact(t.TempDir())
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestReconcileWarnings(t *testing.T) {
	assert.Nil(t, reconcileWarnings(nil, 0))
	assert.Nil(t, reconcileWarnings([]string{"A"}, 1))

	ws := reconcileWarnings([]string{"A", "B", "C"}, 0)
	require.Len(t, ws, 1)
	assert.Contains(t, ws[0], "3 rule type(s)")
	assert.Contains(t, ws[0], "A, B, C")
}

func TestSourceKeyTracksContent(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir)
	d, err := Discover(dir)
	require.NoError(t, err)

	k1, err := sourceKey(d)
	require.NoError(t, err)
	k2, err := sourceKey(d)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	require.NoError(t, os.WriteFile(d.Files[0], []byte(packFixture+"\n// edited\n"), 0o644))
	k3, err := sourceKey(d)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}
