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
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🔧 failingRenameFS fails every rename
type failingRenameFS struct {
	billy.Filesystem
}

func (f *failingRenameFS) Rename(from, to string) error {
	return errors.New("disk on fire")
}

func TestManager_ReadText(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		path     string
		want     string
		wantKind error
	}{
		{
			name:    "valid_utf8",
			content: []byte("GET /resource/用户/42\n"),
			path:    "src/x.ts",
			want:    "GET /resource/用户/42\n",
		},
		{
			name:    "empty_file",
			content: []byte{},
			path:    "src/x.ts",
			want:    "",
		},
		{
			name:     "invalid_utf8",
			content:  []byte{'o', 'k', 0xff, 0xfe, '!'},
			path:     "src/x.ts",
			wantKind: ErrInvalidEncoding,
		},
		{
			name:     "truncated_rune",
			content:  []byte{'a', 0xe4, 0xbd},
			path:     "src/x.ts",
			wantKind: ErrInvalidEncoding,
		},
		{
			name:     "missing_file",
			path:     "src/missing.ts",
			wantKind: ErrIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			if tt.content != nil {
				require.NoError(t, util.WriteFile(fs, "src/x.ts", tt.content, 0644))
			}
			mgr := NewManager(fs, nil)

			got, _, err := mgr.ReadText(testContext(t), tt.path)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
				var fileErr *FileError
				require.True(t, errors.As(err, &fileErr))
				assert.Equal(t, tt.path, fileErr.Path)
				assert.Contains(t, err.Error(), tt.path)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager_WriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.ts")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0640))

	ctx := testContext(t)
	mgr := NewManager(osfs.New("/", osfs.WithBoundOS()), nil)

	_, mode, err := mgr.ReadText(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), mode)

	require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("new"), mode))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got), "content should be fully replaced")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "mode should be preserved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files should be left behind")
}

func TestManager_WriteFileAtomic_KeepsMode(t *testing.T) {
	withUmask(t, 0o022)

	tests := []struct {
		name string
		mode os.FileMode
	}{
		{name: "world_writable", mode: 0o666},
		{name: "group_writable", mode: 0o664},
		{name: "executable", mode: 0o775},
		{name: "owner_only", mode: 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "x.ts")
			require.NoError(t, os.WriteFile(path, []byte("/resource/a/b"), 0o600))
			require.NoError(t, os.Chmod(path, tt.mode))

			ctx := testContext(t)
			mgr := NewManager(osfs.New("/", osfs.WithBoundOS()), nil)

			_, mode, err := mgr.ReadText(ctx, path)
			require.NoError(t, err)
			require.NoError(t, mgr.WriteFileAtomic(ctx, path, []byte("/resource_a_b"), mode))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, info.Mode().Perm(), "rewriting must not change permissions")
		})
	}
}

func TestManager_WriteFileAtomic_RenameFailure(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "src/x.ts", []byte("original"), 0644))

	mgr := NewManager(&failingRenameFS{Filesystem: fs}, nil)
	err := mgr.WriteFileAtomic(testContext(t), "src/x.ts", []byte("replacement"), 0644)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.Contains(t, err.Error(), "renaming temp file")

	got, err := util.ReadFile(fs, "src/x.ts")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got), "target must be untouched")

	infos, err := fs.ReadDir("src")
	require.NoError(t, err)
	require.Len(t, infos, 1, "temp file should be cleaned up")
	assert.Equal(t, "x.ts", infos[0].Name())
}

func TestManager_Tracking(t *testing.T) {
	ctx := testContext(t)
	mgr := NewManager(memfs.New(), nil)

	mgr.TrackFile(ctx, "b.ts", FileInfo{Status: StatusRewritten, Replacements: 3})
	mgr.TrackFile(ctx, "a.ts", FileInfo{Status: StatusUnchanged})
	mgr.TrackFile(ctx, "c.ts", FileInfo{Status: StatusFailed, Error: errors.New("boom")})
	mgr.TrackFile(ctx, "d.ts", FileInfo{Status: StatusWouldRewrite, Replacements: 1})

	files := mgr.ListFiles(ctx)
	require.Len(t, files, 4)
	assert.Equal(t, "b.ts", files[0].Path, "files keep tracking order")
	assert.Equal(t, "a.ts", files[1].Path)

	mgr.TrackFile(ctx, "a.ts", FileInfo{Status: StatusUnchanged, Checksum: "abc"})
	files = mgr.ListFiles(ctx)
	require.Len(t, files, 4, "tracking a path again replaces its entry")
	assert.Equal(t, "a.ts", files[1].Path)
	assert.Equal(t, "abc", files[1].Checksum)

	assert.Equal(t, Summary{
		Total:        4,
		Rewritten:    1,
		WouldRewrite: 1,
		Unchanged:    1,
		Failed:       1,
		Replacements: 4,
	}, mgr.Summary(ctx))
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "rewritten", StatusRewritten.String())
	assert.Equal(t, "would rewrite", StatusWouldRewrite.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
