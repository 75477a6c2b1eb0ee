package asynclog

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"
)

func countLines(t *testing.T, dir string) (files []string, lines int) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
		f, err := os.Open(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			require.True(t, strings.HasSuffix(sc.Text(), "x"))
			lines++
		}
		f.Close()
	}
	return files, lines
}

// S1: writing enough lines to force multiple rotations leaves every line
// present exactly once across all produced files.
func TestScenarioS1RotationPreservesRecords(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	l, err := NewLogger(dir,
		WithMaxFileSize(4096),
		WithMinLevel(Version),
	)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		l.Write(Info, "t", "x")
	}
	l.ForceDestroy()

	files, lines := countLines(t, dir)
	require.GreaterOrEqual(t, len(files), 2)
	require.Equal(t, 200, lines)
}

// S2: an Error-level write forces a flush without requiring ForceDestroy.
func TestScenarioS2ErrorForcesFlush(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	l, err := NewLogger(dir, WithMinLevel(Version))
	require.NoError(t, err)
	defer l.ForceDestroy()

	l.Write(Error, "t", "boom")

	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) == 0 {
			return false
		}
		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		return err == nil && strings.HasSuffix(strings.TrimRight(string(data), "\n"), "boom")
	}, time.Second, 5*time.Millisecond)
}

func TestForceDestroyIsIdempotent(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	l, err := NewLogger(dir)
	require.NoError(t, err)

	l.Write(Info, "t", "hello")
	l.ForceDestroy()
	require.NotPanics(t, func() { l.ForceDestroy() })
}

func TestWriteAfterDestroyIsNoOp(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	l, err := NewLogger(dir)
	require.NoError(t, err)

	l.ForceDestroy()
	require.NotPanics(t, func() { l.Write(Info, "t", "after destroy") })
}

func TestMinLevelFiltersLines(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	l, err := NewLogger(dir, WithMinLevel(Warning))
	require.NoError(t, err)

	l.Write(Debug, "t", "should not appear")
	l.Write(Warning, "t", "should appear")
	l.ForceDestroy()

	_, lines := func() (files []string, lines int) {
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			data, _ := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NotContains(t, string(data), "should not appear")
			for _, ln := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
				if ln != "" {
					lines++
				}
			}
		}
		return
	}()
	require.Equal(t, 1, lines)
}

// S3: a Fatal write lands the die line plus a backtrace, flushes durably,
// and terminates the process via the overridable terminateProcess hook
// rather than os.Exit directly.
func TestScenarioS3FatalPathTerminates(t *testing.T) {
	defer leaktest.Check(t)()

	dir := t.TempDir()
	l, err := NewLogger(dir, WithMinLevel(Version))
	require.NoError(t, err)

	terminated := make(chan int, 1)
	prev := terminateProcess
	terminateProcess = func(code int) { terminated <- code }
	defer func() { terminateProcess = prev }()

	l.Write(Fatal, "t", "out of memory")

	select {
	case code := <-terminated:
		require.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("terminateProcess was never called")
	}

	var sawDieLine, sawBacktrace bool
	var totalLines int
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		contents, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		if strings.Contains(string(contents), "out of memory") {
			sawDieLine = true
		}
		if strings.Contains(string(contents), backtraceTag) {
			sawBacktrace = true
		}
		for _, ln := range strings.Split(strings.TrimRight(string(contents), "\n"), "\n") {
			if ln != "" {
				totalLines++
			}
		}
	}
	require.True(t, sawDieLine, "expected the fatal message to be flushed")
	require.True(t, sawBacktrace, "expected backtrace frames to be flushed")
	require.Greater(t, totalLines, 1)
}
