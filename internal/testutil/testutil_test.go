package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("data", "keepers_stats_2024_2025.csv")
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(env.RootDir(), "data", "keepers_stats_2024_2025.csv"), path)
}

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("nested/dir/file.csv", "Player,Season\n")

	assert.Equal(t, "Player,Season\n", env.ReadFileString("nested/dir/file.csv"))
	env.RequireFileExists("nested/dir/file.csv")
	env.RequireFileNotExists("nested/dir/other.csv")
	env.AssertFileContains("nested/dir/file.csv", "Season")
	env.AssertFileEquals("nested/dir/file.csv", "Player,Season\n")
}

func TestTestEnv_ListFiles(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("out/a.csv", "")
	env.WriteFileString("out/b.csv", "")

	assert.ElementsMatch(t, []string{"a.csv", "b.csv"}, env.ListFiles("out"))
}

func TestTestEnv_CopyFile(t *testing.T) {
	env := NewTestEnv(t)

	src := filepath.Join(t.TempDir(), "src.html")
	require.NoError(t, os.WriteFile(src, []byte("<table></table>"), 0o644))

	env.CopyFile(src, "pages/copy.html")
	assert.Equal(t, "<table></table>", env.ReadFileString("pages/copy.html"))
}

func TestTestEnv_Chdir(t *testing.T) {
	env := NewTestEnv(t)
	env.MkdirAll("work")

	env.Chdir("work")

	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(env.Path("work"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTestEnv_SetEnv(t *testing.T) {
	const key = "KEEPERS_TESTUTIL_VAR"

	t.Run("set", func(t *testing.T) {
		env := NewTestEnv(t)
		env.SetEnv(key, "value")
		assert.Equal(t, "value", os.Getenv(key))
	})

	_, ok := os.LookupEnv(key)
	assert.False(t, ok, "variable should be unset after the subtest")
}

func TestTestEnv_String(t *testing.T) {
	env := NewTestEnv(t)
	assert.Contains(t, env.String(), env.RootDir())
}

func TestGoldenHelper_AssertGolden(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteFileString("golden/dataset.golden", "Player,Season\nA,2024-2025\n")

	golden := NewGoldenHelper(t, env.Path("golden"))
	golden.AssertGoldenString("dataset.golden", "Player,Season\nA,2024-2025\n")
	assert.Equal(t, "Player,Season\nA,2024-2025\n", golden.MustReadGoldenString("dataset.golden"))

	env.WriteFileString("actual.csv", "Player,Season\nA,2024-2025\n")
	golden.AssertGoldenFile(env.Path("actual.csv"), "dataset.golden")
}

func TestGoldenHelper_GoldenPath(t *testing.T) {
	golden := NewGoldenHelper(t, "/some/golden/dir")

	assert.Equal(t, "/some/golden/dir/test.golden", golden.GoldenPath("test.golden"))
	assert.False(t, golden.IsUpdateMode())
}

func TestResetConfig_LoadsDefaults(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		ResetConfig(t)
		assert.Equal(t, ".", viper.GetString("data.dir"))
		assert.Equal(t, "fail", viper.GetString("seasons.unknown"))
		viper.Set("data.dir", "elsewhere")
	})

	assert.False(t, viper.IsSet("data.dir"), "viper should be reset after the test")
}

func TestSetViperValue(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("fetch.delay", "1s")
	t.Run("override", func(t *testing.T) {
		SetViperValue(t, "fetch.delay", "0s")
		assert.Equal(t, "0s", viper.GetString("fetch.delay"))
	})
	assert.Equal(t, "1s", viper.GetString("fetch.delay"))
}

func TestSetupHelpers(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	env := NewTestEnv(t)

	SetupTestCache(t, env)
	assert.True(t, viper.GetBool("cache.enabled"))
	assert.Contains(t, viper.GetString("cache.dbfile"), "test-cache.db")

	dbPath := SetupDatasetteDB(t, env)
	assert.Equal(t, dbPath, viper.GetString("datasette.dbfile"))
	assert.True(t, viper.GetBool("datasette.enabled"))

	assert.Equal(t, env.RootDir(), SetupDataDir(t, env))
	assert.Equal(t, env.RootDir(), viper.GetString("data.dir"))
}
