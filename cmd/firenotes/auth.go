// Authentication commands: account creation, sign-in, token refresh, and
// session inspection.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lycilph/firenotes/internal/credstore"
	"github.com/lycilph/firenotes/internal/model"
)

var (
	authEmail    string
	authPassword string
)

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "account email (required)")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "account password (required)")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		res, err := gateway.SignUp(ctx, authEmail, authPassword)
		if err != nil {
			return err
		}
		if err := persistAuth(ctx, res); err != nil {
			return err
		}
		// best-effort: a failed mail-out should not fail the signup
		if err := gateway.SendVerificationEmail(ctx, res.IDToken); err != nil {
			fmt.Fprintln(os.Stderr, "warning: verification email not sent:", err)
		}
		fmt.Println(res.UserID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		res, err := gateway.SignIn(ctx, authEmail, authPassword)
		if err != nil {
			return err
		}
		if err := persistAuth(ctx, res); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored tokens and go anonymous",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		if err := store.Remove(ctx, credstore.KeyAuthToken); err != nil {
			return err
		}
		if err := store.Remove(ctx, credstore.KeyRefreshToken); err != nil {
			return err
		}
		sess.Clear()
		fmt.Println("ok")
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the stored refresh token for fresh tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		rt, err := store.Get(ctx, credstore.KeyRefreshToken)
		if err != nil {
			return err
		}
		if rt == "" {
			return fmt.Errorf("no refresh token (login required)")
		}
		res, err := gateway.RefreshToken(ctx, rt)
		if err != nil {
			return err
		}
		if err := persistAuth(ctx, res); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := reqCtx(cmd)
		defer cancel()

		sess.Resolve(ctx, store)
		cur := sess.Current()
		if !cur.Authenticated {
			fmt.Println("anonymous")
			return nil
		}
		printJSON(struct {
			Subject       string `json:"subject"`
			Name          string `json:"name,omitempty"`
			Email         string `json:"email,omitempty"`
			EmailVerified string `json:"emailVerified,omitempty"`
		}{cur.Claims.Subject, cur.Claims.Name, cur.Claims.Email, cur.Claims.EmailVerified})
		return nil
	},
}

// persistAuth stores the issued tokens and publishes the session.
func persistAuth(ctx context.Context, res model.AuthResult) error {
	if err := store.Set(ctx, credstore.KeyAuthToken, res.IDToken); err != nil {
		return err
	}
	if res.RefreshToken != "" {
		if err := store.Set(ctx, credstore.KeyRefreshToken, res.RefreshToken); err != nil {
			return err
		}
	}
	return sess.ApplyToken(res.IDToken)
}
