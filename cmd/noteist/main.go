package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/buddyh/noteist/internal/api"
	"github.com/buddyh/noteist/internal/config"
	"github.com/buddyh/noteist/internal/daterange"
	"github.com/buddyh/noteist/internal/log"
	"github.com/buddyh/noteist/internal/output"
	"github.com/spf13/cobra"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

type rootFlags struct {
	project     string
	token       string
	since       string
	until       string
	color       string
	configPath  string
	apiURL      string
	debug       bool
	asJSON      bool
	saveProject bool
	saveToken   bool
}

// app carries per-run state shared by all commands.
type app struct {
	flags  rootFlags
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	configPath string
	cfg        *config.Config
	out        *output.Formatter
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, now: time.Now}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.formatter().WriteError(err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	flags := &a.flags

	cmd := &cobra.Command{
		Use:   "noteist",
		Short: "Report completed Todoist tasks for a project",
		Long: `Report the tasks completed in a Todoist project over a date range.

Sub-tasks are listed under their parent. --project and --token fall back
to the saved defaults (see 'noteist config'); the token may also come
from TODOIST_API_TOKEN.

Examples:
  noteist --project Work
  noteist -p Work --since 2024-01-01 --until 2024-01-31
  noteist -p Work --token <token> --save-project --save-token`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), a)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate("noteist {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.project, "project", "p", "", "project name (e.g., Work)")
	pf.StringVar(&flags.token, "token", "", "Todoist API token")
	pf.BoolVar(&flags.debug, "debug", false, "log API requests to stderr")
	pf.BoolVar(&flags.asJSON, "json", false, "output JSON")
	pf.StringVar(&flags.color, "color", "", "colorize output: auto, always, never")
	pf.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/noteist/config.toml)")
	pf.StringVar(&flags.apiURL, "api-url", api.BaseURL, "API base URL")
	pf.MarkHidden("api-url")

	cmd.Flags().StringVar(&flags.since, "since", "", "start date (YYYY-MM-DD, default: two weeks ago)")
	cmd.Flags().StringVar(&flags.until, "until", "", "end date (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVar(&flags.saveProject, "save-project", false, "save --project as the default")
	cmd.Flags().BoolVar(&flags.saveToken, "save-token", false, "save --token as the default")

	cmd.AddCommand(newProjectsCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// setup loads the config file once and builds the formatter.
func (a *app) setup() error {
	path := a.flags.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.configPath = path
	a.cfg = cfg

	colorSetting := a.flags.color
	if colorSetting == "" {
		colorSetting = cfg.Color
	}
	mode, err := output.ParseColorMode(colorSetting)
	if err != nil {
		return err
	}
	a.out = output.NewFormatter(a.stdout, output.Options{JSON: a.flags.asJSON, Color: mode})
	return nil
}

// formatter returns the configured formatter, or a plain one if setup
// never ran (flag parse errors, bad config).
func (a *app) formatter() *output.Formatter {
	if a.out != nil {
		return a.out
	}
	return output.NewFormatter(a.stdout, output.Options{JSON: a.flags.asJSON, Color: output.ColorNever})
}

func (a *app) newClient(token string) *api.Client {
	return api.NewClient(token,
		api.WithBaseURL(a.flags.apiURL),
		api.WithLogger(log.New(a.stderr, a.flags.debug)),
	)
}

func runReport(ctx context.Context, a *app) error {
	creds, err := config.Resolve(a.flags.token, a.flags.project, a.cfg)
	if err != nil {
		return err
	}

	rng, err := daterange.Parse(a.flags.since, a.flags.until, a.now())
	if err != nil {
		return err
	}

	client := a.newClient(creds.Token)

	project, err := client.FindProjectByName(ctx, creds.Project)
	if err != nil {
		return err
	}

	if err := a.saveDefaults(project.Name, creds.Token); err != nil {
		return err
	}

	tasks, err := client.ListCompletedTasks(ctx, project.ID, rng.Since, rng.Until)
	if err != nil {
		return err
	}

	return a.out.WriteReport(output.Report{Project: project.Name, Range: rng, Tasks: tasks})
}

// saveDefaults persists the values requested by --save-project and
// --save-token. The project is saved only after it resolved.
func (a *app) saveDefaults(project, token string) error {
	if !a.flags.saveProject && !a.flags.saveToken {
		return nil
	}
	if a.flags.saveProject {
		a.cfg.Project = project
	}
	if a.flags.saveToken {
		a.cfg.Token = token
	}
	return config.Save(a.configPath, a.cfg)
}
