package opts

import (
	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
	"github.com/walteh/formaturl/pkg/config"
	"github.com/walteh/formaturl/pkg/log"
	"github.com/walteh/formaturl/pkg/operation"
	"github.com/walteh/formaturl/pkg/status"
	"github.com/walteh/formaturl/pkg/text"
	"github.com/walteh/formaturl/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	FS      billy.Filesystem
	Console *log.Logger
}

// Loader builds the RootOpts for a command once its flags are parsed
type Loader func(cmd *cobra.Command) (*RootOpts, error)

// NewRewriteOperation wires a rewrite over the configured root
func (o *RootOpts) NewRewriteOperation() (*operation.RewriteOperation, error) {
	walker, err := walk.New(o.FS, walk.Options{
		Root:      o.Config.Root,
		Extension: o.Config.Extension,
		Ignore:    o.Config.Ignore,
	})
	if err != nil {
		return nil, errors.Errorf("creating walker: %w", err)
	}

	mgr := status.NewManager(o.FS, nil)

	return operation.NewRewriteOperation(operation.Options{
		Config:   o.Config,
		Source:   walker,
		Files:    mgr,
		Status:   mgr,
		Replacer: text.NewResourceReplacer(),
		Console:  o.Console,
	})
}
