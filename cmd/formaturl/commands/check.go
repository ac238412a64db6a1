package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/formaturl/cmd/formaturl/opts"
	"github.com/walteh/formaturl/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrRewriteNeeded is returned by check when at least one file would change
var ErrRewriteNeeded = errors.Base("files need rewriting")

// NewCheckCmd creates a new check command
func NewCheckCmd(load opts.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if any file would be rewritten",
		Long: `Check performs a dry run of rewrite and exits nonzero when any file
still contains an unflattened resource path. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, report, err := run(cmd, load, "check", true)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			if report.NeedsRewrite() {
				console.Warningf("%d of %d files need rewriting", report.Summary.WouldRewrite, report.Summary.Total)
				return errors.Errorf("%w: %d of %d", ErrRewriteNeeded, report.Summary.WouldRewrite, report.Summary.Total)
			}

			console.Success("all resource paths are flattened")
			return nil
		},
	}

	return cmd
}
