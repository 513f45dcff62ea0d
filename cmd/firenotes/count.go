// Count commands: read and write the per-user profile counter.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "User counter operations",
}

var countGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the user counter (0 for new users)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		sess.Resolve(ctx, store)
		n, err := counter.GetUserCount(ctx)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var countSetCmd = &cobra.Command{
	Use:   "set <n>",
	Short: "Set the user counter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		sess.Resolve(ctx, store)
		if !sess.Current().Authenticated {
			return fmt.Errorf("login required")
		}
		if err := counter.SetUserCount(ctx, n); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	countCmd.AddCommand(countGetCmd)
	countCmd.AddCommand(countSetCmd)
}
