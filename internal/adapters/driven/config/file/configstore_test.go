package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bedstat-cli/internal/core/domain"
)

const sampleConfig = `
[path]
bedstat_output = "/data/bedstat"

[database]
dir = "/data/bedbase"

[pipeline]
executable = "Rscript"
script = "/opt/bedstat/tools/regionstat.R"
genome = "hg38"
search_terms = ["cell_type", "organism"]
retries = 0
verbose = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bedbase.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestResolvePath_Explicit(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.toml")

	path, err := ResolvePath("/explicit.toml")

	require.NoError(t, err)
	assert.Equal(t, "/explicit.toml", path)
}

func TestResolvePath_Env(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.toml")

	path, err := ResolvePath("")

	require.NoError(t, err)
	assert.Equal(t, "/from/env.toml", path)
}

func TestResolvePath_Default(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	path, err := ResolvePath("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bedstat", "config.toml"), path)
}

func TestNewConfigStore_NestedTablesAsDottedKeys(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/data/bedstat", store.GetString("path.bedstat_output"))
	assert.Equal(t, "/data/bedbase", store.GetString("database.dir"))
	assert.Equal(t, "hg38", store.GetString("pipeline.genome"))
	assert.Equal(t, []string{"cell_type", "organism"}, store.GetStringSlice("pipeline.search_terms"))
	assert.Equal(t, 0, store.GetInt("pipeline.retries"))
	assert.True(t, store.GetBool("pipeline.verbose"))
}

func TestNewConfigStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	_, ok := store.Get("path.bedstat_output")
	assert.False(t, ok)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, "this is not valid TOML {{{[["))

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Empty(t, store.GetString("pipeline.verbose"))
	assert.Zero(t, store.GetInt("pipeline.genome"))
	assert.False(t, store.GetBool("pipeline.genome"))
	assert.Nil(t, store.GetStringSlice("pipeline.genome"))
}

func TestConfigStore_SetPersistsNested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("pipeline.genome", "mm10"))
	require.NoError(t, store.Set("path.bedstat_output", "/out"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[pipeline]")

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "mm10", reloaded.GetString("pipeline.genome"))
	assert.Equal(t, "/out", reloaded.GetString("path.bedstat_output"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("pipeline.genome", "hg19"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.GetString("pipeline.genome")
			_ = store.GetStringSlice("pipeline.search_terms")
		}()
	}
	wg.Wait()
}

func TestNestMap_InvertsFlatten(t *testing.T) {
	nested := map[string]any{
		"a": map[string]any{"b": "1", "c": map[string]any{"d": int64(2)}},
		"e": true,
	}

	got, err := nestMap(flattenMap(nested, ""))
	require.NoError(t, err)
	assert.Equal(t, nested, got)
}

func TestNestMap_ValueAndTableClash(t *testing.T) {
	_, err := nestMap(map[string]any{"a": "scalar", "a.b": "1"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigStore_SetRejectsScalarPrefix(t *testing.T) {
	path := writeConfig(t, "pipeline = \"Rscript\"\n")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	err = store.Set("pipeline.genome", "hg38")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"pipeline"`)
	assert.Equal(t, "Rscript", store.GetString("pipeline"))
	_, ok := store.Get("pipeline.genome")
	assert.False(t, ok)

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, "Rscript", reloaded.GetString("pipeline"))
}

func TestConfigStore_SetRejectsTableOverwrite(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	err = store.Set("pipeline", "Rscript")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "hg38", store.GetString("pipeline.genome"))
}

func TestConfigStore_SetRollsBackOnSaveFailure(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	require.Error(t, store.Set("channel", make(chan int)))

	_, ok := store.Get("channel")
	assert.False(t, ok)
}
