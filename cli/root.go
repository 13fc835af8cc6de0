// Package cli is the librosc command line: an interactive menu by default,
// plus subcommands for scripted use.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"libros-circulares/config"
	"libros-circulares/library"
	"libros-circulares/logging"
)

// app is the state shared by every command once flags are parsed.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	mgr    *library.Manager
	out    io.Writer
	prompt *prompter
	render *renderer
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var envFile string

	root := &cobra.Command{
		Use:   "librosc",
		Short: "Manage the Libros Circulares book sharing database",
		Long: `librosc manages users, books, reading clubs, exchanges, orders and reviews.
Run it without a subcommand for the interactive menus.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, envFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.interactive(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "file of KEY=VALUE settings to load first")
	pf.String("driver", "", "database driver: mysql or sqlite (DB_DRIVER)")
	pf.String("db-path", "", "sqlite database file (DB_PATH)")
	pf.String("log-mode", "", "debug or production (LOG_MODE)")
	pf.StringP("output", "o", "", "result format: table or json (OUTPUT)")

	root.AddCommand(
		newReportCmd(a),
		newListCmd(a),
		newMigrateCmd(a),
		newResetPasswordCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, envFile string) error {
	loaded, err := config.LoadEnvFile(envFile)
	if err != nil {
		return err
	}
	cfg, err := config.NewConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	log.Debug("configuration loaded",
		zap.Bool("env_file", loaded),
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.String("user", cfg.Database.User),
		zap.String("password", cfg.Database.MaskedPassword()),
		zap.String("path", cfg.Database.Path))

	a.cfg = cfg
	a.log = log
	a.mgr = library.NewManager(*cfg, log)
	a.out = cmd.OutOrStdout()
	a.prompt = newPrompter(cmd.InOrStdin(), a.out)
	a.render = &renderer{out: a.out, format: cfg.CLI.Output}
	return nil
}

// interactive probes the database and then runs the main menu until the user
// leaves or input ends.
func (a *app) interactive(ctx context.Context) error {
	if err := a.mgr.CheckConnection(ctx); err != nil {
		fmt.Fprintln(a.out, "\nCRITICAL: could not connect to the database. Check the DB_* settings.")
		return err
	}
	err := a.mainMenu(ctx)
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}

// fail prints a one-line explanation of err for the user.
func (a *app) fail(err error) {
	switch {
	case errors.Is(err, errInvalidInput):
		fmt.Fprintf(a.out, "Invalid input. %s\n", detail(err))
	case errors.Is(err, library.ErrEmptyPassword):
		fmt.Fprintln(a.out, "Error: password cannot be empty.")
	case errors.Is(err, library.ErrConnectionUnavailable):
		fmt.Fprintln(a.out, "Error: the database is unreachable. See the log for details.")
	case errors.Is(err, library.ErrConstraintViolation):
		fmt.Fprintf(a.out, "Rejected by the database: %s\n", detail(err))
	case errors.Is(err, library.ErrUnknownField):
		fmt.Fprintf(a.out, "Error: %s\n", detail(err))
	case errors.Is(err, library.ErrNotFound):
		fmt.Fprintln(a.out, "No matching record.")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", detail(err))
	}
}

// detail flattens joined errors onto one line.
func detail(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// reportWrite describes the outcome of an update or delete.
func (a *app) reportWrite(what string, id, n int64, done string) {
	if n > 0 {
		a.printf("%s %d %s.\n", what, id, done)
		return
	}
	a.printf("No %s %d found, or nothing changed.\n", strings.ToLower(what), id)
}
