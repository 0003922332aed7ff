package logging

import (
	"os"
	"sync"
)

// cappedLogFile appends log lines to a file and starts the file over
// whenever the next write would push it past the byte cap. The server
// often runs unattended next to the game server for weeks; a bounded
// log beats a full disk.
type cappedLogFile struct {
	mu   sync.Mutex
	path string
	cap  int64
	f    *os.File
	n    int64
}

func newCappedLogFile(path string, maxMB int) (*cappedLogFile, error) {
	if maxMB <= 0 {
		maxMB = 10
	}
	w := &cappedLogFile{path: path, cap: int64(maxMB) << 20}
	if err := w.open(os.O_APPEND); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *cappedLogFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		if err := w.open(os.O_APPEND); err != nil {
			return 0, err
		}
	}
	if w.n+int64(len(p)) > w.cap {
		if err := w.open(os.O_TRUNC); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(p)
	w.n += int64(n)
	return n, err
}

func (w *cappedLogFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// open (re)opens the log file with the given mode flag and records its
// current size, closing any previous handle first.
func (w *cappedLogFile) open(modeFlag int) error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|modeFlag, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.n = info.Size()
	return nil
}
