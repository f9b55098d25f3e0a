package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/config"
	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenarios"
)

// app carries the loaded configuration from the root command to subcommands.
type app struct {
	v          *viper.Viper
	configFile string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "pagetour",
		Short:         "Browser scenarios against the-internet demo site with page objects and HTML reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (default is ./pagetour.yaml)")
	flags.String("base-url", "", "base URL of the site under test")
	flags.Bool("headless", browser.DefaultOptions().Headless, "run the browser without a window (default unless HEADLESS=false)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = a.v.BindPFlag("browser.headless", flags.Lookup("headless"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newRunCmd(a),
		newListCmd(a),
		newInstallCmd(),
		newReportCmd(a),
		newDemoCmd(a),
	)

	return rootCmd
}

func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	a.logger.Debug("Loaded configuration", slog.String("file", a.v.ConfigFileUsed()), slog.String("baseUrl", cfg.BaseURL))
	return nil
}

func (a *app) browserOptions() browser.Options {
	options := browser.DefaultOptions()
	options.Headless = a.cfg.Browser.Headless
	options.SlowMo = a.cfg.Browser.SlowMo
	options.Args = a.cfg.Browser.Args
	options.ActionTimeout = a.cfg.Browser.ActionTimeout
	options.Logger = a.logger
	return options
}

func (a *app) pageOptions() page.Options {
	return page.Options{
		BaseURL:        a.cfg.BaseURL,
		Wait:           a.cfg.Waits.Default,
		PopupWait:      a.cfg.Waits.Popup,
		ScreenshotsDir: a.cfg.Output.ScreenshotsDir,
		Logger:         a.logger,
	}
}

func (a *app) scenarioOptions() scenarios.Options {
	return scenarios.Options{OpenCartURL: a.cfg.OpenCartURL}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	printfTo(cmd.OutOrStdout(), format, args...)
}

func printfTo(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
