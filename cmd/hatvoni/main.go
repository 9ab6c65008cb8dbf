// Package main provides the hatvoni CLI entry point.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hatvoni/hatvoni/internal/config"
	"github.com/hatvoni/hatvoni/internal/logging"
	"github.com/hatvoni/hatvoni/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries global flag values and shared resources for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dataDirFlag string
	jsonOutput  bool
	verbose     bool

	logger *zap.Logger
	now    func() time.Time
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		logger: zap.NewNop(),
		now:    time.Now,
	}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	_ = a.logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	// Print the error since we have SilenceErrors: true
	if a.jsonOutput {
		a.printJSON(ErrorResponse{Error: err.Error()})
	} else {
		fmt.Fprintf(stderr, "Error: %s\n", err)
	}
	return exitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hatvoni",
		Short: "Project, task and team record keeper",
		Long: `hatvoni tracks projects, tasks and team members.

Each collection is stored as a JSON document in the data directory
(projects.json, tasks.json, team.json). Every change rewrites the
whole document.

The data directory is taken from --data-dir, then $HATVONI_DATA_DIR,
then data_dir in ~/.config/hatvoni/config.yml, then ./data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore error if not found)
			_ = godotenv.Load()
			a.logger = logging.New(a.stderr, a.verbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dataDirFlag, "data-dir", "", "Directory holding the JSON data files")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Write JSON instead of human-readable text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log store activity to stderr")
	root.Version = Version

	root.AddCommand(
		newProjectCmd(a),
		newTaskCmd(a),
		newTeamCmd(a),
		newReportCmd(a),
		newDemoCmd(a),
		newConfigCmd(a),
	)
	return root
}

// dataDir resolves the data directory for this invocation.
func (a *app) dataDir() (string, error) {
	dir, err := config.ResolveDataDir(a.dataDirFlag)
	if err != nil {
		return "", withExit(ExitConfigError, err)
	}
	a.logger.Debug("resolved data directory", zap.String("dir", dir))
	return dir, nil
}

func (a *app) storeOptions() []storage.Option {
	return []storage.Option{storage.WithLogger(a.logger), storage.WithClock(a.now)}
}

func (a *app) openProjects() (*storage.ProjectStore, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, err
	}
	s, err := storage.OpenProjects(config.ProjectsPath(dir), a.storeOptions()...)
	if err != nil {
		return nil, withExit(ExitDataError, fmt.Errorf("loading projects: %w", err))
	}
	return s, nil
}

func (a *app) openTasks() (*storage.TaskStore, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, err
	}
	s, err := storage.OpenTasks(config.TasksPath(dir), a.storeOptions()...)
	if err != nil {
		return nil, withExit(ExitDataError, fmt.Errorf("loading tasks: %w", err))
	}
	return s, nil
}

func (a *app) openTeam() (*storage.TeamStore, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, err
	}
	s, err := storage.OpenTeam(config.TeamPath(dir), a.storeOptions()...)
	if err != nil {
		return nil, withExit(ExitDataError, fmt.Errorf("loading team members: %w", err))
	}
	return s, nil
}
