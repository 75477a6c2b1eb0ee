package asynclog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// logFile is the opaque on-disk sink the flusher writes buffers to.
// Grounded on original_source/LogImpl.cpp's createLogFile/mLogFd pair.
type logFile struct {
	f            *os.File
	path         string
	bytesWritten int64
}

// openLogFile creates dir (mode 0777, silently accepted if it already
// exists) and creates a new timestamped log file inside it. An existing
// file of the same name is never opened or truncated; a numeric suffix is
// added to the name instead.
func openLogFile(dir string) (*logFile, error) {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, &WriteError{Op: "mkdir", Err: err}
	}
	base := time.Now().Format("2006-01-02_15-04-05")
	// A second-resolution name can collide when rotation happens more
	// than once within the same second; disambiguate with a numeric
	// suffix rather than silently truncating a sibling file's contents.
	for attempt := 0; ; attempt++ {
		name := base + ".log"
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d.log", base, attempt)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0o666)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return nil, &WriteError{Op: "create log file", Err: err}
		}
		return &logFile{f: f, path: path}, nil
	}
}

func (lf *logFile) Write(p []byte) (int, error) {
	n, err := lf.f.Write(p)
	lf.bytesWritten += int64(n)
	return n, err
}

func (lf *logFile) Close() error {
	return lf.f.Close()
}

// wouldOverflow reports whether adding n bytes would reach or exceed maxSize,
// the rotation trigger from spec.md §4.3.
func (lf *logFile) wouldOverflow(n int, maxSize int64) bool {
	return lf.bytesWritten+int64(n) >= maxSize
}

func (lf *logFile) String() string {
	return fmt.Sprintf("logFile(%s, %d bytes)", lf.path, lf.bytesWritten)
}
