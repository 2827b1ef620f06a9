package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	freesound "github.com/angelospk/freesound-mcp"
	"github.com/angelospk/freesound-mcp/pkg/mcpserver"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Define configuration keys
const (
	CfgKeyAPIKey      = "freesound.apikey"
	CfgKeyAccessToken = "freesound.token" // OAuth2 access token, stored by `login`
	CfgKeyBaseURL     = "freesound.baseurl"
	CfgKeyDownloadDir = "download.dir"
	CfgKeyLogLevel    = "log.level"
)

// Environment variables bound to the keys above.
var envBindings = []struct {
	key string
	env string
}{
	{CfgKeyAPIKey, "FREESOUND_API_KEY"},
	{CfgKeyAccessToken, "FREESOUND_ACCESS_TOKEN"},
	{CfgKeyBaseURL, "FREESOUND_BASE_URL"},
	{CfgKeyDownloadDir, "FREESOUND_DOWNLOAD_DIR"},
	{CfgKeyLogLevel, "FREESOUND_LOG_LEVEL"},
}

// NewClientFunc allows overriding the Freesound client creation for testing.
var NewClientFunc = func(config freesound.Config) (mcpserver.SoundService, error) {
	client, err := freesound.NewClient(config)
	if err != nil {
		return nil, err
	}
	return client, nil
}

var (
	// Used for flags.
	cfgFile  string
	logLevel string

	// RootCmd represents the base command when called without any subcommands
	// Exported for use in tests
	RootCmd = &cobra.Command{
		Use:   "freesound-mcp",
		Short: "Search and download Freesound sounds, as an MCP server or from the command line.",
		Long: `freesound-mcp exposes Freesound search and download as Model Context Protocol
tools ("serve"), and the same operations as plain commands.

The API key is read from FREESOUND_API_KEY (environment or .env file) or the
freesound.apikey entry of the config file.`,
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.freesound-mcp/config.yaml or ./config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag(CfgKeyLogLevel, RootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error reading .env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".freesound-mcp"))
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	for _, b := range envBindings {
		_ = viper.BindEnv(b.key, b.env)
	}
	viper.SetDefault(CfgKeyLogLevel, "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error reading config file (%s): %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

// configPath is where login/logout persist settings.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(home, ".freesound-mcp", "config.yaml"), nil
}

// newLogger builds the command logger. It writes to stderr: stdout may carry MCP frames.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(viper.GetString(CfgKeyLogLevel))
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// newClient creates the Freesound client from the current configuration.
func newClient(logger *logrus.Logger) (mcpserver.SoundService, error) {
	client, err := NewClientFunc(freesound.Config{
		APIKey:      viper.GetString(CfgKeyAPIKey),
		BaseURL:     viper.GetString(CfgKeyBaseURL),
		DownloadDir: viper.GetString(CfgKeyDownloadDir),
		Logger:      logger,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to initialize Freesound client")
		return nil, fmt.Errorf("failed to initialize Freesound client: %w", err)
	}
	return client, nil
}
