package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdul-hamid-achik/docsite/packages/log"
	"github.com/abdul-hamid-achik/docsite/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SettingsFile is the optional tool settings file looked up in the working directory.
const SettingsFile = ".docsite-cli.yaml"

// cliSettings are the tool's own settings, not the site descriptor.
type cliSettings struct {
	Config   string `mapstructure:"config"`
	EnvFile  string `mapstructure:"envFile"`
	LogLevel string `mapstructure:"logLevel"`
	NoColor  bool   `mapstructure:"noColor"`
	Output   string `mapstructure:"output"`
	Verbose  bool   `mapstructure:"verbose"`
}

var (
	settingsFlag string
	settings     cliSettings
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Load, check and package documentation site configuration",
	Long: `docsite loads the configuration descriptor of a documentation site,
validates it, checks its docs for broken links and writes the descriptor
artifact consumed by the site renderer.

The descriptor is read from docsite.yaml, docsite.yml, docsite.json or
.docsite.yaml in the site directory, or from the built-in canonical
descriptor with --builtin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeSettings(cmd)
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var rep *reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// newFormatter returns the formatter selected by the output setting, with the
// version header already written.
func newFormatter(cmd *cobra.Command) (output.Formatter, error) {
	f, err := output.New(settings.Output, cmd.OutOrStdout(), settings.Verbose, settings.NoColor)
	if err != nil {
		return nil, &usageError{err: err}
	}
	f.FormatHeader(version)
	return f, nil
}

// fail reports err through f and marks it as reported.
func fail(f output.Formatter, err error) error {
	f.FormatError(err)
	if flushErr := output.Flush(f); flushErr != nil {
		return flushErr
	}
	return reported(err)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFlag, "settings", "", "tool settings file (default is ./"+SettingsFile+")")
	flags.String("config", "", "site descriptor file or directory (env: DOCSITE_CONFIG)")
	flags.Bool("builtin", false, "use the built-in canonical descriptor")
	flags.String("env-file", "", "Path to .env file for ${VAR} expansion (env: DOCSITE_ENV_FILE)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error (env: DOCSITE_LOG_LEVEL)")
	flags.Bool("no-color", false, "Disable colored output (env: DOCSITE_NO_COLOR)")
	flags.StringP("output", "o", "console", "Output format: console, json (env: DOCSITE_OUTPUT)")
	flags.BoolP("verbose", "v", false, "Verbose output")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeSettings merges defaults, the settings file, DOCSITE_* variables
// and flags, in increasing precedence, then configures logging.
func initializeSettings(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("logLevel", "warn")
	v.SetDefault("output", "console")

	if settingsFlag != "" {
		v.SetConfigFile(settingsFlag)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(SettingsFile, ".yaml"))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DOCSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"config":   "config",
		"envFile":  "env-file",
		"logLevel": "log-level",
		"noColor":  "no-color",
		"output":   "output",
		"verbose":  "verbose",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
		envName := "DOCSITE_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
		if err := v.BindEnv(key, envName); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envName, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || settingsFlag != "" {
			return fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	settings = cliSettings{}
	if err := v.Unmarshal(&settings); err != nil {
		return fmt.Errorf("unable to decode settings: %w", err)
	}

	log.Configure(log.Config{
		Level:   settings.LogLevel,
		Output:  cmd.ErrOrStderr(),
		Console: true,
		NoColor: settings.NoColor,
	})
	if used := v.ConfigFileUsed(); used != "" {
		logger := log.WithComponent("cli")
		logger.Debug().Str("file", used).Msg("using settings file")
	}
	return nil
}
