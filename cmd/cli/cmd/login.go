package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	loginAPIKey string
	loginToken  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a Freesound API key and/or OAuth2 access token in the config file",
	Long: `Stores credentials in the config file ($HOME/.freesound-mcp/config.yaml unless
--config is given) so later commands do not need environment variables.

The API key authenticates search and preview downloads. The OAuth2 access token
is only needed for "download --original". Obtaining the token (the OAuth2 flow
itself) happens outside this tool.

Examples:
  freesound-mcp login --api-key <key>
  freesound-mcp login --token <access-token>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginAPIKey == "" && loginToken == "" {
			return errors.New("nothing to store: pass --api-key and/or --token")
		}

		values := map[string]interface{}{}
		if loginAPIKey != "" {
			values[CfgKeyAPIKey] = loginAPIKey
		}
		if loginToken != "" {
			values[CfgKeyAccessToken] = loginToken
		}

		path, err := updateConfigFile(values)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		for key, value := range values {
			viper.Set(key, value)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Credentials saved to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginAPIKey, "api-key", "", "Freesound API key")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Freesound OAuth2 access token")
}

// updateConfigFile merges values into the persisted config file only. A separate
// viper instance keeps environment and flag values out of the file.
func updateConfigFile(values map[string]interface{}) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	for key, value := range values {
		v.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("could not write config file %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("could not restrict config file permissions: %w", err)
	}
	return path, nil
}
