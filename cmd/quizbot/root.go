package main

import (
	"github.com/spf13/cobra"

	corecmd "github.com/m3rciful/quizbot/core/cmd"
	coreconfig "github.com/m3rciful/quizbot/core/config"
	"github.com/m3rciful/quizbot/internal/app"
)

const defaultConfigPath = "config.yaml"

var rootCmd = &cobra.Command{
	Use:           "quizbot",
	Short:         "Telegram trivia quiz bot",
	Long:          "quizbot runs a Telegram bot that plays ten-question trivia games backed by Open Trivia DB.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		return coreconfig.LoadDotEnv(envFile, cmd.Flags().Changed("env-file"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		return corecmd.Run(corecmd.Options{
			ConfigPath:        path,
			DefaultConfigPath: defaultConfigPath,
			LoadConfig: func(p string) (corecmd.ConfigCarrier, error) {
				// Only an explicitly requested file must exist.
				cfg, err := coreconfig.Load(p, path == "" && p == defaultConfigPath)
				if err != nil {
					return nil, err
				}
				return cfg, nil
			},
			Bootstrap: app.Bootstrap,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (overrides CONFIG_PATH)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file; set variables take precedence")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(versionCmd)
}
