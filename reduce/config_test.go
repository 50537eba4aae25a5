package reduce_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilereduce/reduce"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := reduce.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, reduce.DefaultConfig(), cfg)
	assert.Equal(t, []string{"s1", "s22", "ld"}, cfg.Preserve)

	cfg, err = reduce.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Tries)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reduce.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tries: 3\nthreads: 2\npreserve: [s2]\nmax_chain: 8\n"), 0o600))

	cfg, err := reduce.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tries)
	assert.Equal(t, 2, cfg.Threads)
	assert.Equal(t, []string{"s2"}, cfg.Preserve)
	assert.Equal(t, 8, cfg.MaxChain)
	assert.Equal(t, 2, cfg.Tau, "unset fields keep defaults")

	t.Setenv("TILEREDUCE_TRIES", "7")
	t.Setenv("TILEREDUCE_SEED", "99")
	t.Setenv("TILEREDUCE_PRESERVE", "s1,ld")
	cfg, err = reduce.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Tries)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, []string{"s1", "ld"}, cfg.Preserve)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reduce.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tries: 0\n"), 0o600))
	_, err := reduce.LoadConfig(path)
	assert.ErrorIs(t, err, reduce.ErrOptionViolation)

	require.NoError(t, os.WriteFile(path, []byte("tries: [\n"), 0o600))
	_, err = reduce.LoadConfig(path)
	assert.Error(t, err)

	t.Setenv("TILEREDUCE_PRESERVE", "s1,bogus")
	_, err = reduce.LoadConfig("")
	assert.ErrorIs(t, err, reduce.ErrOptionViolation)
}
