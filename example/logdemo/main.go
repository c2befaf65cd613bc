// Package main demonstrates log lines printed above a live input line.
package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/termconsole"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logdemo",
		Short: "Type lines while random log messages scroll above the prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			historyMax, _ := cmd.Flags().GetInt("history-max")
			historyFile, _ := cmd.Flags().GetString("history-file")
			theme, _ := cmd.Flags().GetString("theme")
			return run(cmd.Context(), interval, historyMax, historyFile, theme)
		},
		SilenceUsage: true,
	}
	cmd.Flags().Duration("interval", 5*time.Second, "time between random log messages")
	cmd.Flags().Int("history-max", termconsole.DefaultHistoryMax, "number of history entries to keep")
	cmd.Flags().String("history-file", "", "load and save history in this file")
	cmd.Flags().String("theme", "", "TOML color scheme file")
	return cmd
}

func run(ctx context.Context, interval time.Duration, historyMax int, historyFile, theme string) error {
	options := []termconsole.Option{
		termconsole.WithHistory("history thing", "you can decide", "how much you", "want"),
		termconsole.WithHistoryMax(historyMax),
	}
	if historyFile != "" {
		options = append(options, termconsole.WithFileHistory(historyFile))
	}
	if theme != "" {
		scheme, err := termconsole.LoadColorScheme(theme)
		if err != nil {
			return err
		}
		options = append(options, termconsole.WithColorScheme(scheme))
	}

	c, err := termconsole.New(options...)
	if err != nil {
		return err
	}
	defer c.Close()

	// Anything written with the standard logger lands above the prompt too.
	log.SetOutput(c.Writer(termconsole.LevelPlain))
	log.SetFlags(log.Ltime)

	c.OnLine(func(line string) {
		c.Warn(line)
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go emitRandom(ctx, c, interval)

	c.Info("Type something...")
	c.Logger().Info("demo started", "interval", interval, "history_max", historyMax)

	err = c.RunWithContext(ctx)
	if errors.Is(err, termconsole.ErrInterrupted) || errors.Is(err, termconsole.ErrEOF) {
		return nil
	}
	return err
}

func emitRandom(ctx context.Context, c *termconsole.Console, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		switch rand.IntN(7) {
		case 0:
			c.Log("Log!")
		case 1:
			c.Info("Info here")
		case 2:
			c.Warn("A warning!")
		case 3:
			c.Error("An error!")
		case 4:
			c.Accept("Accepted!")
		case 5:
			c.Reject("Rejected!")
		default:
			log.Printf("%d entries in history", len(c.History()))
		}
	}
}
