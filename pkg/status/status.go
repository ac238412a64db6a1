// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var (
	// ErrIO covers files that cannot be opened, read, written or replaced
	ErrIO = errors.Base("i/o error")
	// ErrInvalidEncoding is returned for content that is not valid UTF-8
	ErrInvalidEncoding = errors.Base("invalid utf-8 encoding")
)

// ⚠️ FileError names the file that failed and the kind of failure
type FileError struct {
	Path string
	Kind error // ErrIO or ErrInvalidEncoding
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// 📊 FileStatus represents what happened to a visited file
type FileStatus int

const (
	StatusUnknown      FileStatus = iota
	StatusRewritten               // Content changed and was written back
	StatusWouldRewrite            // Content would change, dry run
	StatusUnchanged               // No match, file left alone
	StatusFailed                  // Reading, decoding or writing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusRewritten:
		return "rewritten"
	case StatusWouldRewrite:
		return "would rewrite"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains the outcome for one file
type FileInfo struct {
	Path         string     // Path as yielded by the walker
	Status       FileStatus // Outcome
	Replacements int        // Number of matches rewritten
	Checksum     string     // SHA-256 of the content left on disk
	Error        error      // Set when Status is StatusFailed
}

// 💾 FileManager handles the file system side of a rewrite
type FileManager interface {
	ReadText(ctx context.Context, path string) (string, os.FileMode, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error
}

// 📈 StatusReporter tracks file outcomes
type StatusReporter interface {
	TrackFile(ctx context.Context, path string, info FileInfo)
	ListFiles(ctx context.Context) []FileInfo
	Summary(ctx context.Context) Summary
}

// 🧮 Summary counts outcomes by status
type Summary struct {
	Total        int
	Rewritten    int
	WouldRewrite int
	Unchanged    int
	Failed       int
	Replacements int
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	fs        billy.Filesystem
	formatter FileFormatter

	mu    sync.RWMutex
	order []string
	files map[string]FileInfo
}

// 🏭 NewManager creates a new status manager over fs
func NewManager(fs billy.Filesystem, formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		fs:        fs,
		formatter: formatter,
		files:     make(map[string]FileInfo),
	}
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

// ReadText reads the whole file as UTF-8 text and returns it with the file's permission bits
func (m *Manager) ReadText(ctx context.Context, path string) (string, os.FileMode, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return "", 0, &FileError{Path: path, Kind: ErrIO, Err: err}
	}

	f, err := m.fs.Open(path)
	if err != nil {
		return "", 0, &FileError{Path: path, Kind: ErrIO, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, encoding.UTF8Validator))
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return "", 0, &FileError{Path: path, Kind: ErrInvalidEncoding, Err: err}
		}
		return "", 0, &FileError{Path: path, Kind: ErrIO, Err: err}
	}

	zerolog.Ctx(ctx).Trace().Str("path", path).Int("bytes", len(data)).Msg("read file")

	return string(data), info.Mode().Perm(), nil
}

// WriteFileAtomic writes content to a temp file beside path and renames it over path
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (err error) {
	if mode == 0 {
		mode = 0644
	}

	tmp, tempPath, err := m.createTemp(path, mode)
	if err != nil {
		return &FileError{Path: path, Kind: ErrIO, Err: errors.Errorf("creating temp file: %w", err)}
	}

	defer func() {
		if err != nil {
			_ = m.fs.Remove(tempPath) // Clean up temp file
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return &FileError{Path: path, Kind: ErrIO, Err: errors.Errorf("writing temp file: %w", err)}
	}

	if err = m.setMode(tmp, tempPath, mode); err != nil {
		_ = tmp.Close()
		return &FileError{Path: path, Kind: ErrIO, Err: errors.Errorf("setting temp file mode: %w", err)}
	}

	if err = tmp.Close(); err != nil {
		return &FileError{Path: path, Kind: ErrIO, Err: errors.Errorf("closing temp file: %w", err)}
	}

	// Rename temp file to target (atomic operation)
	if err = m.fs.Rename(tempPath, path); err != nil {
		return &FileError{Path: path, Kind: ErrIO, Err: errors.Errorf("renaming temp file: %w", err)}
	}

	zerolog.Ctx(ctx).Trace().Str("path", path).Int("bytes", len(content)).Msg("replaced file")

	return nil
}

// createTemp opens a new exclusive file in the same directory as path
func (m *Manager) createTemp(path string, mode os.FileMode) (billy.File, string, error) {
	dir, base := filepath.Split(path)

	var lastErr error
	for range 10 {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(rand.Uint64(), 36)+".tmp")
		f, err := m.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// setMode applies mode exactly; the mode given to OpenFile is filtered by the umask
func (m *Manager) setMode(f billy.File, name string, mode os.FileMode) error {
	if c, ok := f.(interface{ Chmod(os.FileMode) error }); ok {
		return c.Chmod(mode)
	}
	if c, ok := m.fs.(billy.Change); ok {
		return c.Chmod(name, mode)
	}
	return nil
}

// StatusReporter interface implementation

// TrackFile records the outcome for path; tracking the same path twice replaces it
func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info.Path = path
	if _, ok := m.files[path]; !ok {
		m.order = append(m.order, path)
	}
	m.files[path] = info

	logger := zerolog.Ctx(ctx)
	if info.Error != nil {
		logger.Error().Err(info.Error).Str("path", path).Msg(m.formatter.FormatError(path, info.Error))
		return
	}
	logger.Debug().
		Str("path", path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Str("checksum", info.Checksum).
		Msg(m.formatter.FormatFileOperation(path, info.Status, info.Replacements))
}

// ListFiles returns tracked files in the order they were first tracked
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, m.files[path])
	}
	return files
}

func (m *Manager) Summary(ctx context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Summary
	for _, info := range m.files {
		s.Total++
		s.Replacements += info.Replacements
		switch info.Status {
		case StatusRewritten:
			s.Rewritten++
		case StatusWouldRewrite:
			s.WouldRewrite++
		case StatusUnchanged:
			s.Unchanged++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
