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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/formaturl/pkg/log"
	"github.com/walteh/formaturl/pkg/status"
	"github.com/walteh/formaturl/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ErrFilesFailed is returned when at least one file could not be processed
var ErrFilesFailed = errors.Base("files failed")

// 📋 Report is the per-file outcome of a run
type Report struct {
	Files   []status.FileInfo
	Summary status.Summary
}

// Failed returns the files that could not be processed
func (r Report) Failed() []status.FileInfo {
	var failed []status.FileInfo
	for _, f := range r.Files {
		if f.Status == status.StatusFailed {
			failed = append(failed, f)
		}
	}
	return failed
}

// NeedsRewrite reports whether a dry run found files that would change
func (r Report) NeedsRewrite() bool {
	return r.Summary.WouldRewrite > 0
}

// 📦 RewriteOperation rewrites resource paths in every file the source yields
type RewriteOperation struct {
	BaseOperation
}

// 📦 NewRewriteOperation creates a new rewrite operation
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &RewriteOperation{BaseOperation: base}, nil
}

// 🏃 Execute runs the rewrite
func (op *RewriteOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	op.Console.StartRun(ctx, log.RunOperation{
		Root:      op.Source.Root(),
		Extension: op.Config.Extension,
		Pattern:   op.rules[0].Pattern(),
		DryRun:    op.Config.DryRun,
	})
	defer op.Console.EndRun(ctx)

	for path, err := range op.Source.Files(ctx) {
		if err != nil {
			if isFatalWalkError(err) {
				return errors.Errorf("walking %s: %w", op.Source.Root(), err)
			}
			if ferr := op.fail(ctx, path, err); ferr != nil {
				return ferr
			}
			continue
		}

		if err := op.processFile(ctx, path); err != nil {
			if ferr := op.fail(ctx, path, err); ferr != nil {
				return ferr
			}
		}
	}

	report := op.Report(ctx)
	op.Console.Summary(report.Files, report.Summary, op.Formatter)

	logger.Debug().Int("files", report.Summary.Total).Msg("rewrite finished")

	if report.Summary.Failed > 0 {
		return errors.Errorf("%w: %d of %d", ErrFilesFailed, report.Summary.Failed, report.Summary.Total)
	}

	return nil
}

// Report returns the outcomes recorded so far
func (op *RewriteOperation) Report(ctx context.Context) Report {
	return Report{
		Files:   op.Status.ListFiles(ctx),
		Summary: op.Status.Summary(ctx),
	}
}

// 📄 processFile reads, transforms and writes back a single file
func (op *RewriteOperation) processFile(ctx context.Context, path string) error {
	rel := op.Source.Rel(path)

	zerolog.Ctx(ctx).Debug().Str("file", rel).Msg("processing file")

	content, mode, err := op.Files.ReadText(ctx, path)
	if err != nil {
		return err
	}

	modified, count := op.Replacer.ReplaceString(content, op.rules)

	if count == 0 {
		op.record(ctx, rel, status.FileInfo{
			Status:   status.StatusUnchanged,
			Checksum: status.Checksum([]byte(content)),
		})
		return nil
	}

	if op.Config.ShowDiff {
		op.Console.LogDiff(rel, content, modified)
	}

	if op.Config.DryRun {
		op.record(ctx, rel, status.FileInfo{
			Status:       status.StatusWouldRewrite,
			Replacements: count,
			Checksum:     status.Checksum([]byte(content)),
		})
		return nil
	}

	if err := op.Files.WriteFileAtomic(ctx, path, []byte(modified), mode); err != nil {
		return err
	}

	op.record(ctx, rel, status.FileInfo{
		Status:       status.StatusRewritten,
		Replacements: count,
		Checksum:     status.Checksum([]byte(modified)),
	})
	return nil
}

// fail records a failed file; it returns an error only when the run must stop
func (op *RewriteOperation) fail(ctx context.Context, path string, err error) error {
	rel := op.Source.Rel(path)
	op.record(ctx, rel, status.FileInfo{
		Status: status.StatusFailed,
		Error:  err,
	})

	if op.Config.FailFast {
		return errors.Errorf("processing %s: %w", rel, err)
	}
	return nil
}

func (op *RewriteOperation) record(ctx context.Context, rel string, info status.FileInfo) {
	op.Status.TrackFile(ctx, rel, info)
	op.Console.LogFileOperation(ctx, log.FileOperation{
		Path:         rel,
		Status:       info.Status,
		Replacements: info.Replacements,
		Err:          info.Error,
	})
}

func isFatalWalkError(err error) bool {
	return errors.Is(err, walk.ErrRootNotFound) ||
		errors.Is(err, walk.ErrRootNotDir) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
