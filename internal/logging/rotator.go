package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultLogFileName is the active log file of the terminal demo.
const DefaultLogFileName = "dockable.log"

// RotatorConfig controls file logging. Zero MaxBackups or MaxAgeDays keeps
// every backup.
type RotatorConfig struct {
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer appending to Dir/FileName and rolling the file
// over once it grows past MaxSizeMB.
type LogRotator struct {
	mu          sync.Mutex
	cfg         RotatorConfig
	maxSize     int64
	maxAge      time.Duration
	currentFile *os.File
	currentSize int64
	now         func() time.Time
}

// NewLogRotator opens (or creates) the active log file.
func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.FileName == "" {
		cfg.FileName = DefaultLogFileName
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &LogRotator{
		cfg:     cfg,
		maxSize: int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxAge:  time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		now:     time.Now,
	}
	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the active log file path.
func (r *LogRotator) Path() string {
	return filepath.Join(r.cfg.Dir, r.cfg.FileName)
}

func (r *LogRotator) openCurrentFile() error {
	r.currentSize = 0
	if info, err := os.Stat(r.Path()); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
	}
	r.currentFile = nil

	backupPath := fmt.Sprintf("%s.%s", r.Path(), r.now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.cfg.Compress {
		if err := compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

func compressFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// backups returns rotated files, oldest first.
func (r *LogRotator) backups() []os.FileInfo {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return nil
	}

	var out []os.FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), r.cfg.FileName+".") {
			continue
		}
		if info, err := e.Info(); err == nil {
			out = append(out, info)
		}
	}
	slices.SortFunc(out, func(a, b os.FileInfo) int {
		if c := a.ModTime().Compare(b.ModTime()); c != 0 {
			return c
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

func (r *LogRotator) cleanup() {
	now := r.now()
	var kept []os.FileInfo
	for _, info := range r.backups() {
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			r.remove(info.Name())
			continue
		}
		kept = append(kept, info)
	}

	if r.cfg.MaxBackups > 0 && len(kept) > r.cfg.MaxBackups {
		for _, info := range kept[:len(kept)-r.cfg.MaxBackups] {
			r.remove(info.Name())
		}
	}
}

func (r *LogRotator) remove(name string) {
	if err := os.Remove(filepath.Join(r.cfg.Dir, name)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
	}
}

func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
