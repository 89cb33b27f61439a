package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/motorline/partsbot/internal/db"
	"github.com/motorline/partsbot/internal/dialog"
)

func newChatCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		Long:  "Runs a local conversation loop against the same dialog engine the API serves. Useful for trying flows without a client.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "partsbot.yaml", "path to config file")
	return cmd
}

func runChat(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	dispatcher, sessions, _, err := buildDispatcher(cfg, gormDB)
	if err != nil {
		return err
	}
	defer sessions.StopSweeper()

	out := cmd.OutOrStdout()
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	sessionID := uuid.NewString()

	if interactive {
		fmt.Fprintln(out, "Partsbot chat. Type a message, or 'quit' to leave.")
	}

	printResponse(out, dispatcher.Handle(context.Background(), sessionID, "hi"))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Fprintln(out, "Bye!")
			return nil
		}

		resp := dispatcher.Handle(context.Background(), sessionID, line)
		printResponse(out, resp)
		if resp.End {
			return nil
		}
	}
}

// printResponse renders a structured dialog response as plain text: the
// message, the question, and every actionable label.
func printResponse(out io.Writer, resp dialog.Response) {
	fmt.Fprintln(out, resp.Message)
	if resp.Question != "" {
		fmt.Fprintf(out, "\n%s\n", resp.Question)
	}
	for _, opt := range resp.Options {
		fmt.Fprintf(out, "  - %s\n", opt)
	}
	for _, b := range resp.Buttons {
		if b.Disabled {
			continue
		}
		fmt.Fprintf(out, "  [%s] %s\n", b.ID, b.Label)
	}
	for _, b := range resp.NavButtons {
		if b.Disabled {
			continue
		}
		fmt.Fprintf(out, "  [%s] %s\n", b.ID, b.Label)
	}
	for _, b := range resp.ActionButtons {
		fmt.Fprintf(out, "  [%s] %s\n", b.ID, b.Label)
	}
	fmt.Fprintln(out)
}
