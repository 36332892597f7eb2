package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/xesmeta/bootstrap"
	"github.com/kbukum/xesmeta/check"
	"github.com/kbukum/xesmeta/config"
	"github.com/kbukum/xesmeta/i18n"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/params"
	"github.com/kbukum/xesmeta/repository"
	"github.com/kbukum/xesmeta/schema"
	"github.com/kbukum/xesmeta/store"
	"github.com/kbukum/xesmeta/validation"
	"github.com/kbukum/xesmeta/version"
	"github.com/kbukum/xesmeta/xesstep"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	// log overrides the logger built from configuration.
	log *logger.Logger
}

func newStreams() streams {
	return streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// usageError marks failures caused by bad command-line input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// errCheckFailed is returned by check when a remark has ERROR severity.
var errCheckFailed = errors.New("check reported errors")

type cli struct {
	streams
	global globalFlags
}

type globalFlags struct {
	configFile string
	envFile    string
	backend    string
	locale     string
	logLevel   string
}

func run(ctx context.Context, args []string, s streams) int {
	c := &cli{streams: s}
	root := c.rootCommand()
	// A nil slice makes cobra fall back to os.Args.
	root.SetArgs(append([]string{}, args...))
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)
	return c.exitCode(root.ExecuteContext(ctx))
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "xesmeta",
		Short:         "Edit, store and check XES export step configurations",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q", args[0])
			}
			return nil
		},
		RunE: func(*cobra.Command, []string) error {
			return usagef("missing command; run 'xesmeta --help'")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.global.configFile, "config", "", "config file (default: search ./cmd/xesmeta, ./config, .)")
	pf.StringVar(&c.global.envFile, "env-file", "", ".env file to load before the environment")
	pf.StringVar(&c.global.backend, "backend", "", "store backend: memory, redis or database")
	pf.StringVar(&c.global.locale, "locale", "", "message locale, e.g. es_ES")
	pf.StringVar(&c.global.logLevel, "log-level", "", "log level override")

	root.AddCommand(
		c.saveCommand(),
		c.loadCommand(),
		c.stepsCommand(),
		c.fieldsCommand(),
		c.checkCommand(),
		c.healthCommand(),
		c.versionCommand(),
	)
	return root
}

// noArgs rejects positional arguments as a usage error.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unexpected arguments: %s", strings.Join(args, " "))
	}
	return nil
}

func (c *cli) exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errCheckFailed):
		return exitFail
	case errors.As(err, &ue):
		fmt.Fprintf(c.err, "xesmeta: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(c.err, "xesmeta: %v\n", err)
		return exitFail
	}
}

func (c *cli) loadConfig() (*AppConfig, error) {
	var opts []config.Option
	if c.global.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.global.configFile))
	}
	if c.global.envFile != "" {
		opts = append(opts, config.WithEnvFile(c.global.envFile))
	}

	var cfg AppConfig
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if c.global.backend != "" {
		cfg.Store.Backend = c.global.backend
	}
	if c.global.locale != "" {
		cfg.Locale = c.global.locale
	}
	if c.global.logLevel != "" {
		cfg.Logging.Level = c.global.logLevel
	}
	return &cfg, nil
}

func (c *cli) newApp(ctx context.Context) (*bootstrap.App[*AppConfig], error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	var opts []bootstrap.Option
	if c.log != nil {
		opts = append(opts, bootstrap.WithLogger(c.log))
	}
	return bootstrap.NewApp(ctx, cfg, opts...)
}

// withStore runs task against the configured store.
func (c *cli) withStore(ctx context.Context, task func(ctx context.Context, app *bootstrap.App[*AppConfig], st *store.Store) error) error {
	app, err := c.newApp(ctx)
	if err != nil {
		return err
	}
	st, err := store.New(app.Cfg.Store, app.Logger, store.WithMetrics(app.Metrics))
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(st); err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return task(ctx, app, st)
	})
}

func messages(cfg *AppConfig) i18n.Messages {
	if cfg.Locale == "" {
		return i18n.Default()
	}
	return i18n.ForLocale(cfg.Locale)
}

func newMeta(app *bootstrap.App[*AppConfig]) *xesstep.Meta {
	return xesstep.New(
		xesstep.WithMessages(messages(app.Cfg)),
		xesstep.WithLogger(app.Logger),
	)
}

// stepInput collects the flags that describe a step configuration.
type stepInput struct {
	file        string
	sets        []string
	outputField string
}

func (in *stepInput) register(fs *pflag.FlagSet) {
	fs.StringVarP(&in.file, "file", "f", "", "XML fragment with the step parameters ('-' for stdin)")
	fs.StringArrayVar(&in.sets, "set", nil, "set a parameter, Name=value (repeatable)")
	fs.StringVar(&in.outputField, "output-field", "", "name of the appended column")
}

// apply loads the fragment and then the --set overrides into m.
func (in *stepInput) apply(m *xesstep.Meta, stdin io.Reader) error {
	if in.file != "" {
		var (
			data []byte
			err  error
		)
		if in.file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(in.file)
		}
		if err != nil {
			return fmt.Errorf("read step file: %w", err)
		}
		if err := m.LoadXMLString(string(data)); err != nil {
			return err
		}
	}

	v := validation.New()
	for _, kv := range in.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			v.AddError("set", fmt.Sprintf("%q is not Name=value", kv))
			continue
		}
		if err := m.SetParameter(params.Name(name), value); err != nil {
			v.AddError("set", err.Error())
		}
	}
	if err := v.Validate(); err != nil {
		return usageError{err}
	}

	if in.outputField != "" {
		m.SetOutputField(in.outputField)
	}
	return nil
}

func (c *cli) saveCommand() *cobra.Command {
	var (
		pipeline, step string
		in             stepInput
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store a step configuration (from an XML fragment and/or --set)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.New().ObjectID("pipeline", pipeline).ObjectID("step", step).Validate(); err != nil {
				return usageError{err}
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, app *bootstrap.App[*AppConfig], st *store.Store) error {
				m := newMeta(app)
				if err := in.apply(m, c.in); err != nil {
					return err
				}
				if err := m.SaveRep(ctx, st.Repository(), repository.ObjectID(pipeline), repository.ObjectID(step)); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "saved step %s (%d parameters) to %s\n", step, m.Parameters().Len(), st.Backend())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pipeline, "pipeline", "", "pipeline id (required)")
	cmd.Flags().StringVar(&step, "step", "", "step id (required)")
	in.register(cmd.Flags())
	return cmd
}

func (c *cli) loadCommand() *cobra.Command {
	var step, format string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print a stored step configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.New().ObjectID("step", step).OneOf("format", format, []string{"xml", "yaml"}).Validate(); err != nil {
				return usageError{err}
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, app *bootstrap.App[*AppConfig], st *store.Store) error {
				m := newMeta(app)
				if err := m.ReadRep(ctx, st.Repository(), repository.ObjectID(step)); err != nil {
					return err
				}
				if format == "yaml" {
					return writeYAML(c.out, m.Parameters().Map())
				}
				fragment, err := m.XML()
				if err != nil {
					return err
				}
				_, err = io.WriteString(c.out, fragment)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&step, "step", "", "step id (required)")
	cmd.Flags().StringVar(&format, "format", "xml", "output format: xml or yaml")
	return cmd
}

func (c *cli) stepsCommand() *cobra.Command {
	var pipeline string
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the steps stored for a pipeline",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.New().ObjectID("pipeline", pipeline).Validate(); err != nil {
				return usageError{err}
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, _ *bootstrap.App[*AppConfig], st *store.Store) error {
				steps, err := st.StepsOf(ctx, repository.ObjectID(pipeline))
				if err != nil {
					return err
				}
				for _, s := range steps {
					fmt.Fprintln(c.out, s)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pipeline, "pipeline", "", "pipeline id (required)")
	return cmd
}

func (c *cli) fieldsCommand() *cobra.Command {
	var (
		stepName string
		columns  []string
		in       stepInput
	)
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the row schema after the step appends its column",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.New().Required("step-name", stepName).Validate(); err != nil {
				return usageError{err}
			}
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(context.Context) error {
				m := newMeta(app)
				if err := in.apply(m, c.in); err != nil {
					return err
				}
				row := schema.NewRowMeta()
				for _, col := range columns {
					if err := row.AppendColumn(schema.ValueMeta{Name: col, Type: schema.TypeString, Origin: "input"}); err != nil {
						return err
					}
				}
				if err := m.GetFields(row, stepName); err != nil {
					return err
				}
				for _, col := range row.Columns() {
					fmt.Fprintln(c.out, col)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&stepName, "step-name", "", "name of the step (required)")
	cmd.Flags().StringSliceVar(&columns, "input-columns", nil, "names of the incoming string columns")
	in.register(cmd.Flags())
	return cmd
}

func (c *cli) checkCommand() *cobra.Command {
	var (
		stepName string
		inputs   []string
		in       stepInput
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the design-time check; exits 1 on ERROR remarks",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.New().Required("step-name", stepName).Validate(); err != nil {
				return usageError{err}
			}
			app, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(context.Context) error {
				m := newMeta(app)
				if err := in.apply(m, c.in); err != nil {
					return err
				}
				remarks := m.Validate(stepName, inputs)
				for _, r := range remarks {
					fmt.Fprintln(c.out, r)
				}
				if remarks.Count(check.SeverityError) > 0 {
					return errCheckFailed
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&stepName, "step-name", "", "name of the step (required)")
	cmd.Flags().StringSliceVar(&inputs, "input", nil, "names of the steps feeding this one")
	in.register(cmd.Flags())
	return cmd
}

func (c *cli) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report store health",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, app *bootstrap.App[*AppConfig], _ *store.Store) error {
				for _, h := range app.Components.HealthAll(ctx) {
					fmt.Fprintf(c.out, "%s: %s %s\n", h.Name, h.Status, h.Message)
				}
				return app.ReadyCheck(ctx)
			})
		},
	}
}

func (c *cli) versionCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  noArgs,
		RunE: func(*cobra.Command, []string) error {
			info := version.Get()
			switch format {
			case "text":
				fmt.Fprintf(c.out, "xesmeta %s\n", info)
				return nil
			case "yaml":
				return writeYAML(c.out, info)
			default:
				return usagef("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
