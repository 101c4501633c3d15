package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStylesheetExt(t *testing.T) {
	tests := map[string]bool{
		"main.scss":     true,
		"print.sass":    true,
		"Theme.SCSS":    true,
		"dir/_a.Sass":   true,
		"plain.css":     false,
		"scss":          false,
		"archive.scss~": false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsStylesheetExt(name), name)
	}
}

func TestIsStylesheet(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir, []string{"a.scss", "b.css"})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "fake.scss"), 0755))

	ok, err := IsStylesheet(filepath.Join(dir, "a.scss"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsStylesheet(filepath.Join(dir, "b.css"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsStylesheet(filepath.Join(dir, "fake.scss"))
	require.NoError(t, err)
	assert.False(t, ok, "directories are never stylesheets")

	_, err = IsStylesheet(filepath.Join(dir, "gone.scss"))
	assert.True(t, os.IsNotExist(err))
}

func TestIsPartialAndHasMeta(t *testing.T) {
	assert.True(t, IsPartial("/a/b/_vars.scss"))
	assert.False(t, IsPartial("/a/_b/vars.scss"))

	assert.True(t, HasMeta("src/**/*.scss"))
	assert.True(t, HasMeta("src/{a,b}.scss"))
	assert.False(t, HasMeta("src/main.scss"))
}

func TestGlobSorted(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir, []string{"c/_z.scss", "c/_a.scss", "c/m/_deep.scss", "c/_b.sass"})

	got, err := Glob(filepath.Join(dir, "c", "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "c", "_a.scss"),
		filepath.Join(dir, "c", "_b.sass"),
		filepath.Join(dir, "c", "_z.scss"),
		filepath.Join(dir, "c", "m"),
	}, got)

	got, err = Glob(filepath.Join(dir, "c", "**", "*.scss"))
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(dir, "c", "m", "_deep.scss"))
	assert.IsNonDecreasing(t, got)

	got, err = Glob(filepath.Join(dir, "missing", "*"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGlobSkipsDotFiles(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir, []string{"a/_x.scss", "a/.hidden.scss", "a/.cache/_y.scss", "a/b/_z.scss"})

	got, err := Glob(filepath.Join(dir, "a", "**", "*.scss"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "_x.scss"),
		filepath.Join(dir, "a", "b", "_z.scss"),
	}, got)

	got, err = Glob(filepath.Join(dir, "a", ".*.scss"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a", ".hidden.scss")}, got)

	got, err = Glob(filepath.Join(dir, "a", ".cache", "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a", ".cache", "_y.scss")}, got, "dots in the literal base are allowed")
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	createTree(t, dir, []string{
		"main.scss",
		"print.sass",
		"_vars.scss",
		"readme.md",
		"pages/home.scss",
		"pages/_hero.scss",
	})

	opts := ScanOptions{Extensions: StylesheetExtensions, Recursive: true, SkipPartials: true}

	t.Run("directory", func(t *testing.T) {
		got, err := CollectInputs([]string{dir}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"home.scss", "main.scss", "print.sass"}, baseNames(got))
	})

	t.Run("glob argument", func(t *testing.T) {
		got, err := CollectInputs([]string{filepath.Join(dir, "**", "*")}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"home.scss", "main.scss", "print.sass"}, baseNames(got))
	})

	t.Run("explicit partial file kept", func(t *testing.T) {
		got, err := CollectInputs([]string{filepath.Join(dir, "_vars.scss")}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "_vars.scss")}, got)
	})

	t.Run("duplicates dropped in argument order", func(t *testing.T) {
		main := filepath.Join(dir, "main.scss")
		got, err := CollectInputs([]string{main, dir, main}, opts)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, main, got[0])
	})

	t.Run("glob skips generated directory", func(t *testing.T) {
		createTree(t, dir, []string{"build/main.scss"})
		skipping := opts
		skipping.SkipPaths = []string{filepath.Join(dir, "build")}
		got, err := CollectInputs([]string{filepath.Join(dir, "**", "*.scss")}, skipping)
		require.NoError(t, err)
		assert.NotContains(t, got, filepath.Join(dir, "build", "main.scss"))
		assert.Contains(t, got, filepath.Join(dir, "main.scss"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CollectInputs([]string{filepath.Join(dir, "nope.scss")}, opts)
		assert.Error(t, err)
	})
}
