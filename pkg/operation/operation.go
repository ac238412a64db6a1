package operation

import (
	"context"
	"iter"

	"github.com/walteh/formaturl/pkg/config"
	"github.com/walteh/formaturl/pkg/log"
	"github.com/walteh/formaturl/pkg/status"
	"github.com/walteh/formaturl/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work run by the OperationRunner
type Operation interface {
	Execute(ctx context.Context) error
}

// 📂 FileSource yields candidate files, usually a *walk.Walker
type FileSource interface {
	Files(ctx context.Context) iter.Seq2[string, error]
	Rel(path string) string
	Root() string
}

// 🔧 Options contains the dependencies of an operation
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// Source yields the files to process
	Source FileSource
	// Files reads and writes file content
	Files status.FileManager
	// Status records per-file outcomes
	Status status.StatusReporter
	// Replacer applies the rewrite rule
	Replacer text.TextReplacer
	// Formatter renders outcomes, defaults to status.DefaultFileFormatter
	Formatter status.FileFormatter
	// Console prints user facing progress
	Console *log.Logger
}

// 🧱 BaseOperation holds the validated options shared by operations
type BaseOperation struct {
	Options
	rules []*text.Rule
}

// 🏭 NewBaseOperation validates opts and compiles the configured rule
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.Source == nil {
		return BaseOperation{}, errors.Errorf("source is required")
	}
	if opts.Files == nil {
		return BaseOperation{}, errors.Errorf("file manager is required")
	}
	if opts.Status == nil {
		return BaseOperation{}, errors.Errorf("status reporter is required")
	}
	if opts.Replacer == nil {
		return BaseOperation{}, errors.Errorf("replacer is required")
	}
	if opts.Console == nil {
		return BaseOperation{}, errors.Errorf("console is required")
	}
	if opts.Formatter == nil {
		opts.Formatter = status.NewDefaultFileFormatter()
	}

	rule, err := opts.Config.Rule()
	if err != nil {
		return BaseOperation{}, errors.Errorf("compiling rule: %w", err)
	}

	return BaseOperation{Options: opts, rules: []*text.Rule{rule}}, nil
}
