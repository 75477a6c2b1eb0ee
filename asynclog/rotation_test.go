package asynclog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenLogFileCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	f, err := openLogFile(dir)
	require.NoError(t, err)
	defer f.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	_, err = os.Stat(f.path)
	require.NoError(t, err)
}

func TestOpenLogFileDisambiguatesCollisions(t *testing.T) {
	dir := t.TempDir()

	f1, err := openLogFile(dir)
	require.NoError(t, err)
	defer f1.Close()

	f2, err := openLogFile(dir)
	require.NoError(t, err)
	defer f2.Close()

	require.NotEqual(t, f1.path, f2.path)
}

func TestLogFileWouldOverflow(t *testing.T) {
	dir := t.TempDir()
	f, err := openLogFile(dir)
	require.NoError(t, err)
	defer f.Close()

	require.False(t, f.wouldOverflow(100, 1000))
	f.bytesWritten = 950
	require.True(t, f.wouldOverflow(100, 1000))
}
