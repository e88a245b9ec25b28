// Command play is a terminal client for a running pinpoint server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/pinpoint/internal/client"
	"github.com/okian/pinpoint/internal/domain/round"
	"github.com/okian/pinpoint/pkg/logger"
)

const (
	envURL         = "PINPOINT_URL"
	defaultURL     = "http://localhost:3000"
	defaultTimeout = 10 * time.Second
)

var (
	baseURL string
	timeout time.Duration

	playerName string
	character  string
	width      float64
	height     float64
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	url := os.Getenv(envURL)
	if url == "" {
		url = defaultURL
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", url, "server base URL (env "+envURL+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "per-request timeout")

	playCmd.Flags().StringVar(&playerName, "name", "", "submit the time under this name after a find")
	playCmd.Flags().StringVar(&character, "character", client.DefaultCharacter, "character to look for")
	playCmd.Flags().Float64Var(&width, "width", client.DefaultImageWidth, "image width clicks are measured against")
	playCmd.Flags().Float64Var(&height, "height", client.DefaultImageHeight, "image height clicks are measured against")

	rootCmd.AddCommand(playCmd, scoresCmd, resetCmd, charactersCmd)
}

var rootCmd = &cobra.Command{
	Use:          "pinpoint-play",
	Short:        "Play pinpoint from the terminal",
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round and read \"x y\" clicks from stdin",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := client.NewPlayer(newClient(),
			client.WithName(playerName),
			client.WithCharacter(character),
			client.WithImageSize(width, height),
			client.WithPlayerLogger(logger.Get()),
		)
		res, err := p.Play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !res.Found {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gave up after %d clicks\n", res.Clicks)
		}
		return nil
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the leaderboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		scores, err := newClient().Scores(cmd.Context())
		if err != nil {
			return err
		}
		for i, s := range scores {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-20s %s\n", i+1, s.Name,
				round.FormatElapsed(time.Duration(s.TimeMs)*time.Millisecond))
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear found flags on the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := newClient().Reset(cmd.Context()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reset")
		return nil
	},
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List characters and whether they were found",
	RunE: func(cmd *cobra.Command, _ []string) error {
		chars, err := newClient().Characters(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range chars {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s found=%t\n", c.ID, c.Found)
		}
		return nil
	},
}

func newClient() *client.Client {
	return client.New(baseURL, client.WithTimeout(timeout))
}

func main() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
