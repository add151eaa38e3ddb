// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/remark/internal/client"
	"github.com/taibuivan/remark/internal/users/auth"
)

func newAuthCommand(state *cli) *cobra.Command {
	command := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session",
	}

	var signUp auth.SignUpInput
	signUpCommand := &cobra.Command{
		Use:   "sign-up",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := state.client.SignUp(cmd.Context(), signUp)
			return state.keepSession(cmd, result, err)
		},
	}
	signUpCommand.Flags().StringVar(&signUp.Email, "email", "", "account email")
	signUpCommand.Flags().StringVar(&signUp.Password, "password", "", "account password")
	signUpCommand.Flags().StringVar(&signUp.Name, "name", "", "display name")

	var signIn auth.SignInInput
	signInCommand := &cobra.Command{
		Use:   "sign-in",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := state.client.SignIn(cmd.Context(), signIn)
			return state.keepSession(cmd, result, err)
		},
	}
	signInCommand.Flags().StringVar(&signIn.Email, "email", "", "account email")
	signInCommand.Flags().StringVar(&signIn.Password, "password", "", "account password")

	for _, required := range []*cobra.Command{signUpCommand, signInCommand} {
		_ = required.MarkFlagRequired("email")
		_ = required.MarkFlagRequired("password")
	}

	command.AddCommand(
		signUpCommand,
		signInCommand,
		&cobra.Command{
			Use:   "sign-out",
			Short: "Revoke the current session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := state.client.SignOut(cmd.Context()); err != nil {
					return err
				}
				return state.removeToken()
			},
		},
		&cobra.Command{
			Use:   "session",
			Short: "Show the current session (null when signed out)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				view, err := state.client.Session(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), view)
			},
		},
	)

	return command
}

func newMeCommand(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user (requires a session)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := state.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), me)
		},
	}
}

func (state *cli) keepSession(cmd *cobra.Command, result *client.AuthResult, err error) error {
	if err != nil {
		return err
	}
	if err := state.writeToken(result.Token); err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result.User)
}
