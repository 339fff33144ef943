package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"foldertree/internal/core"
	"foldertree/internal/server/config"
	"foldertree/internal/server/database"
	"foldertree/internal/server/service"
	"foldertree/internal/shell"
)

type shellOptions struct {
	prompt   string
	quiet    bool
	rootName string
	logLevel string
}

func (o *shellOptions) bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.prompt, "prompt", "", "prompt printed before each command")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "skip the banner and command list")
	flags.StringVar(&o.rootName, "root", "", "root folder name (default $ROOT_NAME or \"root\")")
	flags.StringVar(&o.logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")
}

// NewShellCmd builds the interactive shell command.
func NewShellCmd() *cobra.Command {
	var opts shellOptions

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read commands from stdin and apply them to a fresh tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", opts.logLevel, err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			cfg := config.Load()
			if opts.rootName != "" {
				cfg.RootName = opts.rootName
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			journal, closeJournal, err := openJournal(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer closeJournal()

			svc := service.NewTreeService(core.NewFiletree(cfg.RootName), journal)
			sh := shell.New(svc, cmd.OutOrStdout(), shell.Options{
				Prompt: opts.prompt,
				Quiet:  opts.quiet,
			})
			return sh.Run(ctx, cmd.InOrStdin())
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

// openJournal connects to the journal database when url is set. The returned
// journal is nil when url is empty.
func openJournal(ctx context.Context, url string) (service.Journal, func(), error) {
	if url == "" {
		return nil, func() {}, nil
	}

	db, err := database.New(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return database.NewRepository(db), db.Close, nil
}
