package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/formaturl/cmd/formaturl/commands"
	"github.com/walteh/formaturl/cmd/formaturl/opts"
	"github.com/walteh/formaturl/pkg/config"
	"github.com/walteh/formaturl/pkg/log"
	"github.com/walteh/formaturl/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the values of the shared flags
type rootFlags struct {
	configFile string
	debug      bool

	root     string
	ext      string
	ignore   []string
	boundary string
	prefix   string
	dryRun   bool
	showDiff bool
	failFast bool
}

// newRootCmd creates the root command; with no subcommand it runs a rewrite
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "formaturl",
		Short: "Flatten /resource/ paths in source files",
		Long: `formaturl walks a directory tree and rewrites every /resource/a/b/c
reference in matching files to /resource_a_b_c, writing each file back in place.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(stderr, flags.debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	addRootFlags(rootCmd, flags)

	load := func(cmd *cobra.Command) (*opts.RootOpts, error) {
		return newRootOpts(cmd, flags, stdout)
	}

	rewriteCmd := commands.NewRewriteCmd(load)
	rootCmd.RunE = rewriteCmd.RunE
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(
		rewriteCmd,
		commands.NewCheckCmd(load),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file path (yaml, json or hcl)")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	pf.StringVarP(&flags.root, "root", "r", config.DefaultRoot, "directory to scan")
	pf.StringVarP(&flags.ext, "ext", "e", config.DefaultExtension, "file suffix to process")
	pf.StringArrayVarP(&flags.ignore, "ignore", "i", nil, "glob of paths to skip, relative to the root (repeatable)")
	pf.StringVar(&flags.boundary, "boundary", string(text.BoundaryToken), "where a captured path ends: token or line")
	pf.StringVar(&flags.prefix, "prefix", text.DefaultPrefix, "path prefix to flatten")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "report changes without writing files")
	pf.BoolVar(&flags.showDiff, "diff", false, "print the changed lines of each file")
	pf.BoolVar(&flags.failFast, "fail-fast", false, "stop at the first file that fails")
}

// newRootOpts merges the config file with the flags that were set and resolves the root
func newRootOpts(cmd *cobra.Command, flags *rootFlags, stdout io.Writer) (*opts.RootOpts, error) {
	ctx := cmd.Context()

	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(ctx, flags.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	set := cmd.Flags()
	if set.Changed("root") {
		cfg.Root = flags.root
	}
	if set.Changed("ext") {
		cfg.Extension = flags.ext
	}
	if set.Changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	}
	if set.Changed("boundary") {
		cfg.Boundary = flags.boundary
	}
	if set.Changed("prefix") {
		cfg.Prefix = flags.prefix
	}
	if set.Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if set.Changed("diff") {
		cfg.ShowDiff = flags.showDiff
	}
	if set.Changed("fail-fast") {
		cfg.FailFast = flags.failFast
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}

	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration loaded")

	return &opts.RootOpts{
		Config:  cfg,
		FS:      osfs.New("/", osfs.WithBoundOS()),
		Console: log.New(stdout, *zerolog.Ctx(ctx)),
	}, nil
}

// resolveRoot returns root as an absolute path with symlinks resolved;
// a missing root is returned as is so the walker can report it
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("resolving root %s: %w", root, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return abs, nil
		}
		return "", errors.Errorf("resolving root %s: %w", root, err)
	}
	return resolved, nil
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
