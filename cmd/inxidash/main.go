// inxidash: web dashboard and exporter for inxi system reports
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wattfource/inxidash/internal/ansi"
	"github.com/wattfource/inxidash/internal/config"
	"github.com/wattfource/inxidash/internal/logging"
	"github.com/wattfource/inxidash/internal/render"
	"github.com/wattfource/inxidash/internal/report"
	"github.com/wattfource/inxidash/internal/server"
	"github.com/wattfource/inxidash/internal/sysinfo"
)

// Version is set at build time
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by subcommands
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "inxidash",
		Short: "Web dashboard for inxi system reports",
		Long: `inxidash runs inxi at a chosen detail level, parses its output into
structured sections and serves them as a categorized web dashboard,
a JSON API and downloadable snapshots.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runServe,
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/inxidash/config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: "+strings.Join(config.LogLevelOptions(), ", "))
	addServeFlags(rootCmd)

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE:  a.runServe,
	}
	addServeFlags(serveCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print a system report as text, JSON, YAML or HTML",
		RunE:  a.runReport,
	}
	reportCmd.Flags().StringP("mode", "m", "", modeUsage("Detail level"))
	reportCmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml, html")
	reportCmd.Flags().StringP("input", "i", "", "Parse saved inxi output instead of running inxi (- for stdin)")
	reportCmd.Flags().Bool("no-color", false, "Disable colors in text output")

	// Modes command
	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "List detail levels and the inxi arguments they use",
		RunE:  a.runModes,
	}

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that inxi is installed and report its version",
		RunE:  a.runCheck,
	}

	// Config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the current settings",
		RunE:  a.runConfigInit,
	}
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  a.runConfigShow,
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(serveCmd, reportCmd, modesCmd, checkCmd, configCmd)
	return rootCmd
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Listen address (default from config)")
	cmd.Flags().StringP("mode", "m", "", modeUsage("Default detail level"))
}

func modeUsage(prefix string) string {
	return fmt.Sprintf("%s: %s (default from config)", prefix, strings.Join(config.ModeOptions(), ", "))
}

// setup loads config and initializes logging before any subcommand
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if errors.Is(err, fs.ErrNotExist) && cmd.Name() == "init" {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = strings.ToLower(level.String())

	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.FilePath = cfg.LogFile
	logCfg.JSONMode = cfg.LogJSON
	logCfg.Output = cmd.ErrOrStderr()
	if err := logging.Init(logCfg); err != nil {
		return err
	}
	if path := logging.Default().LogPath(); path != "" {
		logging.WithComponent("main").WithField("path", path).Debug("logging to file")
	}

	a.cfg = cfg
	return nil
}

func (a *app) collector() *sysinfo.Collector {
	collectorCfg := sysinfo.DefaultConfig()
	collectorCfg.Binary = a.cfg.Binary
	collectorCfg.Timeout = a.cfg.Timeout
	collectorCfg.Retries = a.cfg.Retries
	return sysinfo.New(collectorCfg)
}

// modeFlag resolves --mode over the configured default
func (a *app) modeFlag(cmd *cobra.Command) (sysinfo.Mode, error) {
	raw, _ := cmd.Flags().GetString("mode")
	if raw == "" {
		raw = a.cfg.DefaultMode
	}
	return sysinfo.ParseMode(raw)
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	log := logging.WithComponent("main")

	mode, err := a.modeFlag(cmd)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.cfg.Addr
	}

	collector := a.collector()
	info, err := collector.Check(cmd.Context())
	if err != nil {
		log.WithError(err).Error("inxi is not usable")
		return err
	}
	log.WithFields(map[string]any{"path": info.Path, "version": info.Version}).Info("found inxi")

	srv := server.New(collector, server.Options{
		Addr:        addr,
		DefaultMode: mode,
		Version:     Version,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Inxi dashboard running on http://%s\n", addr)
	return srv.Start(cmd.Context())
}

func (a *app) runReport(cmd *cobra.Command, args []string) error {
	mode, err := a.modeFlag(cmd)
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	var rep *report.SystemReport
	if input != "" {
		raw, err := readInput(cmd.InOrStdin(), input)
		if err != nil {
			return err
		}
		rep, err = report.Assemble(ansi.Strip(raw), mode.String(), time.Now())
		if err != nil {
			return err
		}
	} else {
		rep, err = a.collector().Collect(cmd.Context(), mode)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == render.FormatText {
		noColor, _ := cmd.Flags().GetBool("no-color")
		return render.Text(out, rep, render.TextOptions{NoColor: noColor})
	}
	return render.Export(out, rep, format)
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read inxi output")
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

func (a *app) runModes(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Mode", "Label", "inxi arguments", "Default"})

	for _, m := range sysinfo.Modes() {
		def := ""
		if m.String() == a.cfg.DefaultMode {
			def = "*"
		}
		t.AppendRow(table.Row{m.String(), m.Label(), fmt.Sprint(m.Args()), def})
	}

	t.Render()
	return nil
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	info, err := a.collector().Check(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "inxi %s (%s)\n", info.Version, info.Path)
	return nil
}

func (a *app) runConfigInit(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		_, path = config.Paths()
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.Save(a.cfg, path); err != nil {
		return errors.Wrap(err, "failed to save config")
	}

	logging.WithComponent("main").WithField("path", path).Info("config written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{config.KeyAddr, a.cfg.Addr},
		{config.KeyDefaultMode, a.cfg.DefaultMode},
		{config.KeyBinary, a.cfg.Binary},
		{config.KeyTimeout, a.cfg.Timeout},
		{config.KeyRetries, a.cfg.Retries},
		{config.KeyLogLevel, a.cfg.LogLevel},
		{config.KeyLogFile, a.cfg.LogFile},
		{config.KeyLogJSON, a.cfg.LogJSON},
	})
	t.Render()
	return nil
}
