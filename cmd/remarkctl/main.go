// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command remarkctl is a command-line client for the remark API.
//
// # Usage
//
//	remarkctl comment list
//	remarkctl comment post "Hello"
//	remarkctl auth sign-in --email ada@example.com --password '...'
//	remarkctl me
//
// The session token is kept in --token-file so later invocations stay signed in.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/remark/internal/client"
	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/constants"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		report(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand.
type cli struct {
	serverURL string
	tokenFile string
	language  string

	client *client.Client
}

func newRootCommand() *cobra.Command {
	state := &cli{}

	root := &cobra.Command{
		Use:           "remarkctl",
		Short:         "Command-line client for the remark comment board",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return state.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&state.serverURL, "server", envOr("REMARK_SERVER", "http://localhost:3000"), "API base URL")
	flags.StringVar(&state.tokenFile, "token-file", defaultTokenFile(), "file that stores the session token")
	flags.StringVar(&state.language, "lang", "", "preferred response language (fr, en)")

	root.AddCommand(
		newCommentCommand(state),
		newAuthCommand(state),
		newMeCommand(state),
	)
	return root
}

// connect builds the API client, resuming the stored session if there is one.
func (state *cli) connect() error {
	options := []client.Option{}
	if state.language != "" {
		options = append(options, client.WithLanguage(state.language))
	}

	token, err := state.readToken()
	if err != nil {
		return err
	}
	if token != "" {
		options = append(options, client.WithToken(token))
	}

	state.client, err = client.New(state.serverURL, options...)
	return err
}

// # Token File

func (state *cli) readToken() (string, error) {
	if state.tokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(state.tokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (state *cli) writeToken(token string) error {
	if state.tokenFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(state.tokenFile), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(state.tokenFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (state *cli) removeToken() error {
	if state.tokenFile == "" {
		return nil
	}
	if err := os.Remove(state.tokenFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// # Helpers

func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// report prints err with its per-field details, whether they came from the server or local validation.
func report(out io.Writer, err error) {
	fmt.Fprintln(out, "error:", err)

	var details []apperr.FieldError
	var apiError *client.APIError
	if errors.As(err, &apiError) {
		details = apiError.Details
	} else if appError := apperr.As(err); appError != nil {
		details = appError.Details
	}
	for _, detail := range details {
		fmt.Fprintf(out, "  %s: %s\n", detail.Field, detail.Message)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "remark", "token")
}
