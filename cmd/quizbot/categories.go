package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	coreconfig "github.com/m3rciful/quizbot/core/config"
	"github.com/m3rciful/quizbot/internal/trivia"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the provider's trivia categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")
		if baseURL == "" {
			baseURL = os.Getenv("TRIVIA_BASE_URL")
		}
		if baseURL == "" {
			baseURL = coreconfig.DefaultTriviaBaseURL
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cats, err := trivia.New(baseURL, nil, timeout).Categories(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tNAME")
		for i, c := range cats {
			fmt.Fprintf(w, "%d\t%d\t%s\n", i, c.ID, c.Name)
		}
		return w.Flush()
	},
}

func init() {
	categoriesCmd.Flags().String("base-url", "", "Provider base URL (defaults to TRIVIA_BASE_URL or "+coreconfig.DefaultTriviaBaseURL+")")
	categoriesCmd.Flags().Duration("timeout", coreconfig.DefaultTriviaTimeoutSeconds*time.Second, "Request timeout")
}
