package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/passvault/internal/client/auth"
	"github.com/iudanet/passvault/internal/client/iocli"
)

func (c *Cli) signupCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			email, err := c.readRequired(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := c.readAccountPassword("Password: ")
			if err != nil {
				return err
			}

			s, err := c.connect(ctx)
			if err != nil {
				return err
			}

			msg, err := s.Auth.Signup(ctx, email, password)
			if err != nil {
				return err
			}

			c.io.Println(iocli.Success.Sprint("✓ " + msg))
			c.io.Printf("Sign in with %s\n", iocli.Code.Sprint("passvault signin"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (c *Cli) signinCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			email, err := c.readRequired(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := c.readAccountPassword("Password: ")
			if err != nil {
				return err
			}

			s, err := c.connect(ctx)
			if err != nil {
				return err
			}

			session, err := s.Auth.Signin(ctx, email, password)
			if err != nil {
				return err
			}

			c.io.Println(iocli.Success.Sprint("✓ Signed in"))
			c.io.Printf("Email:   %s\n", iocli.Highlight.Sprint(session.Email))
			c.io.Printf("Expires: %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (c *Cli) signoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			if err := s.Auth.Signout(cmd.Context()); err != nil {
				if errors.Is(err, auth.ErrNotSignedIn) {
					c.io.Println(iocli.Muted.Sprint("Not signed in"))
					return nil
				}
				return err
			}

			c.io.Println(iocli.Success.Sprint("✓ Signed out"))
			return nil
		},
	}
}

func (c *Cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session as seen by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			session, err := s.Auth.Verify(cmd.Context())
			if err != nil {
				if errors.Is(err, auth.ErrNotSignedIn) {
					c.io.Printf("%s %s\n", iocli.Warning.Sprint("✗"), err.Error())
					return nil
				}
				return err
			}

			c.io.Println(iocli.Success.Sprint("✓ Signed in"))
			c.io.Printf("Email:   %s\n", iocli.Highlight.Sprint(session.Email))
			c.io.Printf("User ID: %s\n", session.UserID)
			c.io.Printf("Server:  %s\n", session.ServerURL)
			c.io.Printf("Expires: %s %s\n",
				session.ExpiresAt.Local().Format(time.RFC1123),
				iocli.Muted.Sprintf("in %s", time.Until(session.ExpiresAt).Round(time.Minute)))
			return nil
		},
	}
}
