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

// Package walk enumerates candidate files under a root directory.
package walk

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrRootNotFound is returned when the root directory does not exist
	ErrRootNotFound = errors.Base("root directory not found")
	// ErrRootNotDir is returned when the root exists but is not a directory
	ErrRootNotDir = errors.Base("root is not a directory")

	errStopWalk = errors.Base("walk stopped")
)

// 📂 Options configures a Walker
type Options struct {
	Root      string   // Directory to scan
	Extension string   // File name suffix to select, e.g. ".ts"
	Ignore    []string // Doublestar globs, relative to Root, to skip
}

// 🚶 Walker yields the files under Root that end in Extension.
//
// Symlinks are never followed, so link cycles cannot loop and a link to a
// matching file is not selected.
type Walker struct {
	fs   billy.Filesystem
	opts Options
}

// 🏭 New creates a walker over fs
func New(fs billy.Filesystem, opts Options) (*Walker, error) {
	if fs == nil {
		return nil, errors.New("filesystem is required")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return &Walker{fs: fs, opts: opts}, nil
}

// Root returns the directory being scanned
func (w *Walker) Root() string {
	return w.opts.Root
}

// Rel returns path relative to the root, using forward slashes
func (w *Walker) Rel(path string) string {
	rel, err := filepath.Rel(w.opts.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// 🔍 Files returns a lazy sequence of matching file paths.
//
// A failed root check ends the sequence with a single error. An entry that
// cannot be read is yielded with its path and error and the walk continues.
func (w *Walker) Files(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := w.checkRoot(); err != nil {
			yield(w.opts.Root, err)
			return
		}

		logger := zerolog.Ctx(ctx)

		err := util.Walk(w.fs, w.opts.Root, func(path string, info os.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				if !yield(path, errors.Errorf("walking %s: %w", path, err)) {
					return errStopWalk
				}
				return nil
			}

			rel := w.Rel(path)

			if info.IsDir() {
				if rel != "." && w.ignored(rel) {
					logger.Debug().Str("dir", rel).Msg("directory ignored by pattern")
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), w.opts.Extension) {
				return nil
			}

			if w.ignored(rel) {
				logger.Debug().Str("file", rel).Msg("file ignored by pattern")
				return nil
			}

			if !yield(path, nil) {
				return errStopWalk
			}
			return nil
		})

		if err != nil && !errors.Is(err, errStopWalk) {
			yield(w.opts.Root, err)
		}
	}
}

// Collect drains Files into a slice, stopping at the first error
func (w *Walker) Collect(ctx context.Context) ([]string, error) {
	var files []string
	for path, err := range w.Files(ctx) {
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func (w *Walker) checkRoot() error {
	info, err := w.fs.Stat(w.opts.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Errorf("%w: %s", ErrRootNotFound, w.opts.Root)
		}
		return errors.Errorf("checking root %s: %w", w.opts.Root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s", ErrRootNotDir, w.opts.Root)
	}
	return nil
}

func (w *Walker) ignored(rel string) bool {
	for _, pattern := range w.opts.Ignore {
		// patterns are validated in New
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
