package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/formaturl/cmd/formaturl/opts"
	"github.com/walteh/formaturl/pkg/log"
	"github.com/walteh/formaturl/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRewriteCmd creates a new rewrite command
func NewRewriteCmd(load opts.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite resource paths in place",
		Long: `Rewrite walks the root and, in every file with the selected suffix,
replaces /resource/<path> with /resource_<path> where every / in <path> becomes _.
Files without a match are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := run(cmd, load, "rewrite", false)
			return err
		},
	}

	return cmd
}

// run loads the options and executes a single rewrite operation; the returned
// context carries the console logger
func run(cmd *cobra.Command, load opts.Loader, name string, check bool) (context.Context, operation.Report, error) {
	o, err := load(cmd)
	if err != nil {
		return nil, operation.Report{}, err
	}
	if check {
		o.Config.DryRun = true
	}

	ctx := zerolog.Ctx(cmd.Context()).With().Str("command", name).Logger().WithContext(cmd.Context())
	ctx = log.NewContext(ctx, o.Console)

	op, err := o.NewRewriteOperation()
	if err != nil {
		return nil, operation.Report{}, errors.Errorf("creating operation: %w", err)
	}

	if err := operation.NewRunner().Run(ctx, op); err != nil {
		return ctx, op.Report(ctx), errors.Errorf("running %s: %w", name, err)
	}

	return ctx, op.Report(ctx), nil
}
