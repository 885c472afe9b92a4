package codegen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwyse/specified-default-derive/pkg/logger"
)

const mediaSrc = "package media\n\n" +
	"type Resolution struct {\n" +
	"\tWidth  uint32 `default:\"640\"`\n" +
	"\tHeight uint32 `default:\"480\"`\n" +
	"\tScenes uint32\n" +
	"}\n\n" +
	"type Codec int\n\n" +
	"const (\n" +
	"\tH264 Codec = iota\n" +
	"\t//specdefault:default\n" +
	"\tAV1\n" +
	"\tVP9\n" +
	")\n\n" +
	"type Broken int\n\n" +
	"const (\n" +
	"\tBrokenA Broken = iota\n" +
	"\tBrokenB\n" +
	")\n"

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "media.go"), []byte(mediaSrc), 0o600))
	return dir
}

func testContext() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.NewForTests())
}

func readOutput(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerator_Generate(t *testing.T) {
	t.Run("Should write one file per requested type", func(t *testing.T) {
		dir := fixtureDir(t)
		fs := afero.NewMemMapFs()
		gen := New(Options{Dir: dir, Types: []string{"Resolution", "Codec"}, Fs: fs})
		require.NoError(t, gen.Generate(testContext()))

		res := readOutput(t, fs, filepath.Join(dir, "resolution_default.go"))
		assert.Contains(t, res, "func DefaultResolution() Resolution {")
		assert.True(t, strings.HasPrefix(res, "// Code generated by specified-default-derive. DO NOT EDIT.\n"))

		cod := readOutput(t, fs, filepath.Join(dir, "codec_default.go"))
		assert.Contains(t, cod, "return AV1")
	})
	t.Run("Should keep generating when a sibling fails", func(t *testing.T) {
		dir := fixtureDir(t)
		fs := afero.NewMemMapFs()
		gen := New(Options{Dir: dir, Types: []string{"Broken", "Resolution"}, Fs: fs})
		err := gen.Generate(testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Broken")

		exists, aerr := afero.Exists(fs, filepath.Join(dir, "resolution_default.go"))
		require.NoError(t, aerr)
		assert.True(t, exists)
		exists, aerr = afero.Exists(fs, filepath.Join(dir, "broken_default.go"))
		require.NoError(t, aerr)
		assert.False(t, exists)
	})
	t.Run("Should join independent failures", func(t *testing.T) {
		dir := fixtureDir(t)
		gen := New(Options{Dir: dir, Types: []string{"Broken", "Ghost"}, Fs: afero.NewMemMapFs()})
		err := gen.Generate(testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Broken")
		assert.Contains(t, err.Error(), "Ghost")
	})
	t.Run("Should merge all types into a single output file", func(t *testing.T) {
		dir := fixtureDir(t)
		fs := afero.NewMemMapFs()
		gen := New(Options{Dir: dir, Types: []string{"Resolution", "Codec"}, Output: "defaults_gen.go", Fs: fs})
		require.NoError(t, gen.Generate(testContext()))

		merged := readOutput(t, fs, filepath.Join(dir, "defaults_gen.go"))
		assert.Contains(t, merged, "func DefaultResolution() Resolution {")
		assert.Contains(t, merged, "func DefaultCodec() Codec {")
		assert.Less(t,
			strings.Index(merged, "func DefaultResolution()"),
			strings.Index(merged, "func DefaultCodec()"))

		exists, err := afero.Exists(fs, filepath.Join(dir, "resolution_default.go"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("Should print instead of write on dry runs", func(t *testing.T) {
		dir := fixtureDir(t)
		fs := afero.NewMemMapFs()
		var out bytes.Buffer
		gen := New(Options{Dir: dir, Types: []string{"Resolution"}, DryRun: true, Fs: fs, Out: &out})
		require.NoError(t, gen.Generate(testContext()))

		assert.Contains(t, out.String(), "func DefaultResolution() Resolution {")
		exists, err := afero.Exists(fs, filepath.Join(dir, "resolution_default.go"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("Should regenerate identically over its own output", func(t *testing.T) {
		dir := fixtureDir(t)
		gen := New(Options{Dir: dir, Types: []string{"Resolution", "Codec"}})
		require.NoError(t, gen.Generate(testContext()))
		first := readOutput(t, afero.NewOsFs(), filepath.Join(dir, "resolution_default.go"))

		require.NoError(t, gen.Generate(testContext()))
		second := readOutput(t, afero.NewOsFs(), filepath.Join(dir, "resolution_default.go"))
		assert.Equal(t, first, second)
	})
	t.Run("Should fail when no types are requested", func(t *testing.T) {
		gen := New(Options{Dir: fixtureDir(t), Fs: afero.NewMemMapFs()})
		err := gen.Generate(testContext())
		var gerr *GenerateError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, ErrCodeNoTypes, gerr.Code)
	})
	t.Run("Should deduplicate requested types", func(t *testing.T) {
		dir := fixtureDir(t)
		fs := afero.NewMemMapFs()
		gen := New(Options{Dir: dir, Types: []string{"Resolution", "Resolution"}, Output: "defaults_gen.go", Fs: fs})
		require.NoError(t, gen.Generate(testContext()))

		merged := readOutput(t, fs, filepath.Join(dir, "defaults_gen.go"))
		assert.Equal(t, 1, strings.Count(merged, "func DefaultResolution()"))
	})
	t.Run("Should skip the merged file when every type fails", func(t *testing.T) {
		dir := fixtureDir(t)
		fs := afero.NewMemMapFs()
		gen := New(Options{Dir: dir, Types: []string{"Broken"}, Output: "defaults_gen.go", Fs: fs})
		require.Error(t, gen.Generate(testContext()))

		exists, err := afero.Exists(fs, filepath.Join(dir, "defaults_gen.go"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("Should fail when the package does not parse", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.go"), []byte("package media\n\ntype X struct {\n"), 0o600))
		gen := New(Options{Dir: dir, Types: []string{"X"}, Fs: afero.NewMemMapFs()})
		require.Error(t, gen.Generate(testContext()))
	})
}
