// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentCommand(state *cli) *cobra.Command {
	command := &cobra.Command{
		Use:   "comment",
		Short: "Read and post comments",
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all comments, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				comments, err := state.client.ListComments(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), comments)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one comment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid comment id %q", args[0])
				}
				found, err := state.client.GetComment(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), found)
			},
		},
		&cobra.Command{
			Use:   "post <content>...",
			Short: "Post a comment (arguments are joined by spaces)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				created, err := state.client.CreateComment(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			},
		},
	)

	return command
}
