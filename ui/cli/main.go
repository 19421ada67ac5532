// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/qrify/qrify/buildvars"
	"github.com/qrify/qrify/internal/config"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/internal/logging"
	"github.com/qrify/qrify/ui"
	"github.com/qrify/qrify/ui/tui"
	"github.com/qrify/qrify/ui/tui/models/views/root"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var version = "dev"   // set by the linker
var gitCommit = "dev" // short commit SHA, set at build time
var buildDate = ""    // RFC3339, set at build time

var (
	cfgFile         string
	verbose         bool
	showVersionFlag bool
)

var appConfig config.Config

// services is set up by setupDefaultServices before any command runs.
var services *ui.Services

// servicesOptions lets tests replace the fingerprint or the client.
var servicesOptions []ui.Option

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// a missing file is expected on first run
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to the user config path")
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// empty values in the file fall back to the defaults
	if appConfig.Storage.Type == "" {
		appConfig.Storage.Type = defaults["storage.type"].(string)
	}
	if appConfig.Storage.Dsn == "" {
		appConfig.Storage.Dsn = defaults["storage.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}
	if appConfig.DownloadDir == "" {
		appConfig.DownloadDir = defaults["download_dir"].(string)
	}

	i18n.Init(appConfig.Language)

	services, err = ui.InitializeDefaults(cmd.Context(), appConfig, resolvedVersion(), servicesOptions...)
	if err != nil {
		return err
	}
	return nil
}

func teardownServices(cmd *cobra.Command, args []string) error {
	return closeServices(context.WithoutCancel(cmd.Context()))
}

func closeServices(ctx context.Context) error {
	if services == nil {
		return nil
	}
	err := services.Close(ctx)
	services = nil
	return err
}

// Execute runs the CLI. main handles the exit code.
func Execute() error {
	ctx := context.Background()
	err := NewRootCmd().ExecuteContext(ctx)
	// post run hooks are skipped when a command fails
	return errors.Join(err, closeServices(ctx))
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

func applyDefaultFlags(flags *pflag.FlagSet) {
	defaults := config.Defaults()
	flags.String("api.base_url", defaults["api.base_url"].(string), "Backend API base URL")
	flags.String("storage.type", defaults["storage.type"].(string), `Local storage ("sqlite", "postgres", "mysql", "memory")`)
	flags.String("storage.dsn", defaults["storage.dsn"].(string), "Local storage connection string (DSN)")
	flags.String("download_dir", defaults["download_dir"].(string), "Directory for downloaded PNG files")
	flags.String("language", defaults["language"].(string), `Language ("en", "de")`)
	flags.Bool("demo", false, "Use an in-memory backend instead of the API")
}

// NewRootCmd builds a fresh command tree, tests use one per case.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qrify",
		Short: "QRify turns text and links into QR codes.",
		Long: `QRify creates QR codes through the QRify backend and keeps a history
of the codes created on this device.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
				os.Exit(0)
			}
			logging.SetVerbose(verbose)
			return setupDefaultServices(cmd, args)
		},
		PersistentPostRunE: teardownServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	applyDefaultFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newCreateCmd(),
		newListCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newScanCmd(),
		newDownloadCmd(),
		newShowCmd(),
		newDeviceCmd(),
		newExportCmd(),
		newVersionCmd(),
	)
	return cmd
}

// runTUI hands the terminal to the TUI, logs go to a file meanwhile.
func runTUI(cmd *cobra.Command) error {
	logPath := logging.DefaultLogPath()
	closer, err := logging.RedirectToFile(logPath)
	if err != nil {
		logging.Warnf("logging to %s failed, continuing without log file: %v", logPath, err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	return tui.Run(root.Deps{
		Context:  cmd.Context(),
		State:    services.State,
		Generate: services.Generate,
		History:  services.History,
		Actions:  services.Actions,
		Version:  resolvedVersion(),
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// no services needed
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

func resolvedVersion() string {
	v, _, _ := resolveBuildVersion(nil)
	return v
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	var b strings.Builder
	b.WriteString(v)
	if c != "" && c != "dev" {
		b.WriteString(" (" + c + ")")
	}
	if d != "" {
		b.WriteString(" built: " + d)
	}
	return b.String()
}

// resolveBuildVersion computes the best available version, commit and build
// date. A nil info is read from the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// some build paths only record the module as a dependency
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/qrify/qrify" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
