// Note commands: list, add, and remove the current user's notes.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lycilph/firenotes/internal/model"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Note operations",
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current user's notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		sess.Resolve(ctx, store)
		list, err := notes.ListNotes(ctx)
		if err != nil {
			return err
		}
		type row struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		}
		rows := make([]row, 0, len(list))
		for _, n := range list {
			rows = append(rows, row{ID: n.ID, Text: n.Text})
		}
		printJSON(rows)
		return nil
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		sess.Resolve(ctx, store)
		if !sess.Current().Authenticated {
			return fmt.Errorf("login required")
		}
		if err := notes.AddNote(ctx, model.Note{Text: args[0]}); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		sess.Resolve(ctx, store)
		if err := notes.DeleteNote(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteRmCmd)
}
