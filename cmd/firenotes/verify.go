// Email verification and profile commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lycilph/firenotes/internal/credstore"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Email verification operations",
}

var verifySendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a verification email for the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		token, err := store.Get(ctx, credstore.KeyAuthToken)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("no stored token (login required)")
		}
		if err := gateway.SendVerificationEmail(ctx, token); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var verifyConfirmCmd = &cobra.Command{
	Use:   "confirm <oob-code>",
	Short: "Confirm a verification code from the email link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		if err := gateway.ConfirmVerification(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile operations",
}

var profileSetNameCmd = &cobra.Command{
	Use:   "set-name <display-name>",
	Short: "Set the display name and refresh the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		token, err := store.Get(ctx, credstore.KeyAuthToken)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("no stored token (login required)")
		}
		res, err := gateway.UpdateProfile(ctx, token, args[0])
		if err != nil {
			return err
		}
		// the fresh id token carries the new display name
		if err := persistAuth(ctx, res); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	verifyCmd.AddCommand(verifySendCmd)
	verifyCmd.AddCommand(verifyConfirmCmd)
	profileCmd.AddCommand(profileSetNameCmd)
}
