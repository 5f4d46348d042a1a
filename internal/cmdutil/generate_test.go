package cmdutil

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/config"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/export"
	"github.com/mqtbench/cli/internal/index"
	"github.com/mqtbench/cli/internal/targets"
)

func TestResolveTarget(t *testing.T) {
	catalog := targets.Default()

	tgt, err := ResolveTarget(catalog, bench.ALG, "ibm_falcon", 3)
	require.NoError(t, err)
	assert.Nil(t, tgt)

	tgt, err = ResolveTarget(catalog, bench.NATIVEGATES, "ibm_falcon", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, tgt.NumQubits)
	assert.Equal(t, "ibm_falcon", tgt.Description)

	tgt, err = ResolveTarget(catalog, bench.MAPPED, "ibm_falcon_27", 4)
	require.NoError(t, err)
	assert.Equal(t, 27, tgt.NumQubits)

	_, err = ResolveTarget(catalog, bench.MAPPED, "foo", 4)
	require.Error(t, err)
}

func TestGenerate_RequiresConfig(t *testing.T) {
	_, err := Generate(context.Background(), GenerateOpts{Algorithm: "ghz", NumQubits: 2})
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
}

func TestGenerate_ExitCodes(t *testing.T) {
	captureLogs(t, false)
	cfg := &cmdtypes.GlobalConfig{}

	_, err := Generate(context.Background(), GenerateOpts{
		Algorithm: "ghz", NumQubits: 2, Level: bench.MAPPED, TargetName: "nowhere_1", Config: cfg,
	})
	require.Error(t, err)
	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Printed)
	assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)

	_, err = Generate(context.Background(), GenerateOpts{
		Algorithm: "ghz", NumQubits: 2, Level: bench.INDEP, OptLevel: 9, Config: cfg,
	})
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
}

func TestGenerateAndEmit_Stdout(t *testing.T) {
	cfg := &cmdtypes.GlobalConfig{}
	result, err := Generate(context.Background(), GenerateOpts{
		Algorithm: "ghz", NumQubits: 3, Level: bench.NATIVEGATES, TargetName: "ibm_falcon",
		OptLevel: 1, RandomParameters: true, Config: cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, "ghz", result.Name)
	require.NotNil(t, result.Target)
	for _, in := range result.Circuit.Instructions {
		if in.Name == "barrier" {
			continue
		}
		assert.True(t, result.Target.HasOperation(in.Name), in.Name)
	}

	var out bytes.Buffer
	path, err := Emit(context.Background(), &out, result, EmitOpts{Format: export.FormatQASM2, Config: cfg})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Contains(t, out.String(), "// Target: ibm_falcon\n")
	assert.Contains(t, out.String(), "OPENQASM 2.0;")
}

func TestEmit_SaveRecordsInIndex(t *testing.T) {
	dir := t.TempDir()
	cfg := &cmdtypes.GlobalConfig{Config: config.DefaultConfig()}

	result, err := Generate(context.Background(), GenerateOpts{
		Algorithm: "ghz", NumQubits: 2, Level: bench.ALG, Mirror: true, Config: cfg,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	path, err := Emit(context.Background(), &out, result, EmitOpts{
		Format: export.FormatSnapshot, Save: true, Directory: dir, Config: cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ghz_alg_mirror_2.qsnap"), path)
	assert.Equal(t, path, strings.TrimSpace(out.String()))

	x, err := index.Open(cfg.Config.IndexPathFor(dir))
	require.NoError(t, err)
	defer x.Close()
	all, err := x.List(context.Background(), index.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Mirror)
	assert.Equal(t, "snapshot", all[0].Format)
	assert.Equal(t, "alg", all[0].Level)
}

func TestRecordArtifact_DisabledIndex(t *testing.T) {
	dir := t.TempDir()
	settings := config.DefaultConfig()
	settings.Index.Enabled = false

	RecordArtifact(context.Background(), &cmdtypes.GlobalConfig{Config: settings}, dir,
		index.Artifact{Path: "x.qasm", Benchmark: "ghz"})
	assert.NoDirExists(t, filepath.Join(dir, ".mqtbench"))
}

func TestRecordArtifact_CustomIndexPath(t *testing.T) {
	settings := config.DefaultConfig()
	settings.Index.Path = filepath.Join(t.TempDir(), "shared.db")

	RecordArtifact(context.Background(), &cmdtypes.GlobalConfig{Config: settings}, t.TempDir(),
		index.Artifact{Path: "x.qasm", Benchmark: "ghz"})

	x, err := index.Open(settings.Index.Path)
	require.NoError(t, err)
	defer x.Close()
	all, err := x.List(context.Background(), index.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, filepath.IsAbs(all[0].Path))
}

func TestEmit_MappedUsesRequestedSize(t *testing.T) {
	dir := t.TempDir()
	cfg := &cmdtypes.GlobalConfig{Config: config.DefaultConfig()}

	result, err := Generate(context.Background(), GenerateOpts{
		Algorithm: "ghz", NumQubits: 5, Level: bench.MAPPED, TargetName: "ibm_falcon_27",
		OptLevel: 2, RandomParameters: true, Config: cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 27, result.Circuit.NumQubits)

	var out bytes.Buffer
	path, err := Emit(context.Background(), &out, result, EmitOpts{
		Format: export.FormatQASM3, Save: true, Directory: dir, Config: cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, "ghz_mapped_ibm_falcon_27_opt2_5.qasm", filepath.Base(path))

	x, err := index.Open(cfg.Config.IndexPathFor(dir))
	require.NoError(t, err)
	defer x.Close()
	all, err := x.List(context.Background(), index.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].NumQubits)
	assert.Equal(t, "ibm_falcon_27", all[0].Target)
}
