package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSrc = "package media\n\n" +
	"type Resolution struct {\n" +
	"\tWidth  uint32 `default:\"640\"`\n" +
	"\tHeight uint32 `default:\"480\"`\n" +
	"\tScenes uint32\n" +
	"}\n"

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := RootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCmd(t *testing.T) {
	t.Run("Should generate a defaults file end to end", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "media.go"), []byte(fixtureSrc), 0o600))

		_, err := runCommand(t, "generate", "--dir", dir, "--type", "Resolution", "--log-level", "disabled")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "resolution_default.go"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "func DefaultResolution() Resolution {")
	})
	t.Run("Should print the code and leave the package untouched on dry runs", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "media.go"), []byte(fixtureSrc), 0o600))

		out, err := runCommand(t, "generate", "--dir", dir, "--type", "Resolution", "--dry-run", "--log-level", "disabled")
		require.NoError(t, err)

		assert.Contains(t, out, "func DefaultResolution() Resolution {")
		_, err = os.Stat(filepath.Join(dir, "resolution_default.go"))
		assert.True(t, os.IsNotExist(err))
	})
	t.Run("Should fail without a type flag", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "media.go"), []byte(fixtureSrc), 0o600))

		_, err := runCommand(t, "generate", "--dir", dir, "--log-level", "disabled")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--type")
	})
}

func TestVersionCmd(t *testing.T) {
	t.Run("Should print the build information", func(t *testing.T) {
		out, err := runCommand(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "specified-default-derive")
	})
}
