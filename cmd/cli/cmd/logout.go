package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logoutAll bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored OAuth2 access token from the config file",
	Long: `Clears the OAuth2 access token stored by "login". With --all the API key is
cleared as well. Environment variables are not affected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := map[string]interface{}{CfgKeyAccessToken: ""}
		if logoutAll {
			values[CfgKeyAPIKey] = ""
		}

		path, err := updateConfigFile(values)
		if err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		for key := range values {
			viper.Set(key, "")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Credentials removed from %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(logoutCmd)

	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "Also remove the stored API key")
}
