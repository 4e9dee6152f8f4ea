package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/tripclient/api/auth"
	"github.com/kbukum/tripclient/api/preferences"
	"github.com/kbukum/tripclient/api/routes"
	"github.com/kbukum/tripclient/apiclient"
	"github.com/kbukum/tripclient/config"
	"github.com/kbukum/tripclient/logger"
	"github.com/kbukum/tripclient/observability"
	"github.com/kbukum/tripclient/session"
	"github.com/kbukum/tripclient/version"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

// app carries state shared by all commands.
type app struct {
	configFile string
	envFile    string
	baseURL    string
	output     string
	debug      bool

	// Test seams.
	doer       apiclient.Doer
	loaderOpts []config.LoaderOption

	cfg       *config.Config
	log       *logger.Logger
	store     *session.Store
	tokenFile string
	client    *apiclient.Client
	tracer    *sdktrace.TracerProvider

	auth        *auth.Service
	preferences *preferences.Service
	routes      *routes.Service
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Command line client for the trip planner API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to config.yml")
	flags.StringVar(&a.envFile, "env-file", "", "path to a .env file")
	flags.StringVar(&a.baseURL, "base-url", "", "override the API base URL")
	flags.StringVarP(&a.output, "output", "o", outputText, "output format: text or json")
	flags.BoolVar(&a.debug, "debug", false, "log request diagnostics at debug level")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newWhoamiCmd(a),
		newPrefsCmd(a),
		newRoutesCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and wires the client stack.
func (a *app) setup(ctx context.Context) error {
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("--output must be %q or %q", outputText, outputJSON)
	}

	opts := append([]config.LoaderOption{}, a.loaderOpts...)
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.baseURL != "" {
		cfg.API.BaseURL = a.baseURL
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg
	lc := cfg.LoggerConfig()
	a.log = logger.New(&lc, cfg.Name)

	clientOpts := []apiclient.Option{apiclient.WithLogger(a.log)}
	if a.doer != nil {
		clientOpts = append(clientOpts, apiclient.WithDoer(a.doer))
	}
	if cfg.Tracing.Enabled {
		tc := cfg.Tracing.TracerConfig
		tc.ServiceVersion = version.Get().Short()
		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		a.tracer = tp
		clientOpts = append(clientOpts, apiclient.WithTracerProvider(tp))
	}

	client, err := apiclient.New(cfg.ClientConfig(version.UserAgent(), auth.MessageRules()...), clientOpts...)
	if err != nil {
		return err
	}

	a.tokenFile = cfg.Session.TokenFile
	if a.tokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locate token file: %w", err)
		}
		a.tokenFile = filepath.Join(dir, cfg.Name, "token")
	}
	a.store = session.NewStore(session.WithLogger(a.log))
	if err := a.store.Load(a.tokenFile); err != nil {
		return err
	}
	client.SetTokenProvider(a.store.Token)

	a.client = client
	a.auth = auth.New(client, a.store)
	a.preferences = preferences.New(client)
	a.routes = routes.New(client)

	a.log.Debug("client ready", logger.Fields(
		"base_url", client.BaseURL(),
		"environment", cfg.Environment,
		"signed_in", a.store.SignedIn(),
	))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.tracer == nil {
		return nil
	}
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.log.WithError(err).Warn("tracer shutdown failed")
		return err
	}
	return nil
}

// skipSetup replaces the root pre-run for commands that need no client.
func skipSetup(*cobra.Command, []string) error { return nil }
