package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cooked/internal/util"

	"github.com/spf13/cobra"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "COOKED_PASSWORD"

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Identifier string
	Password   string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Long: `Sign in against the backend and store the session where the cooked service
will pick it up. The password is read from --password or ` + PasswordEnv + `.`,
		Example: `  cookedctl login -u chef@example.com
  COOKED_PASSWORD=secret cookedctl login -u chef@example.com --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Password == "" {
				opts.Password = os.Getenv(PasswordEnv)
			}

			return runLogin(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.Identifier, "identifier", "u", "", "email or username (required)")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("identifier")

	return cmd
}

func runLogin(ctx context.Context, opts *LoginOptions, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out}

	return withApp(ctx, opts.RootOptions, errOut, func(a *app) error {
		outcome, err := a.auth.Login(ctx, opts.Identifier, opts.Password)
		if err != nil {
			return f.Fail(err)
		}

		return f.Success(outcome, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "signed in as %s (%s, user %d)\nlanding on %s\n",
				outcome.Session.Username, outcome.Session.Role(), outcome.Session.UserID, outcome.Route)

			return err
		})
	})
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Forget the persisted session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runLogout(ctx context.Context, opts *RootOptions, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out}

	return withApp(ctx, opts, errOut, func(a *app) error {
		if err := a.auth.Logout(ctx); err != nil {
			return f.Fail(err)
		}

		return f.Success(map[string]string{"route": a.navigator.Current()}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, "signed out")

			return err
		})
	})
}

// NewCheckCommand creates the check command.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "check <identifier>",
		Short:         "Report whether an account exists for an identifier",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runCheck(ctx context.Context, opts *RootOptions, identifier string, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out}

	return withApp(ctx, opts, errOut, func(a *app) error {
		exists, err := a.auth.CheckIdentifier(ctx, identifier)
		if err != nil {
			return f.Fail(err)
		}

		return f.Success(map[string]bool{"exists": exists}, func(w io.Writer) error {
			verdict := "no account"
			if exists {
				verdict = "account exists"
			}
			_, err := fmt.Fprintf(w, "%s: %s\n", identifier, verdict)

			return err
		})
	})
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the persisted session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runWhoami(ctx context.Context, opts *RootOptions, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out}

	return withApp(ctx, opts, errOut, func(a *app) error {
		session, err := a.sessions.GetSession(ctx)
		if err != nil {
			return f.Fail(err)
		}
		if session == nil {
			return f.Fail(NewExitError(ExitSignedOut, "not signed in"))
		}

		return f.Success(session, func(w io.Writer) error {
			fmt.Fprintf(w, "user\t%d\n", session.UserID)
			fmt.Fprintf(w, "username\t%s\n", session.Username)
			fmt.Fprintf(w, "actor\t%s\n", session.Role())
			if session.Status != "" {
				fmt.Fprintf(w, "status\t%s\n", session.Status)
			}
			if session.ExpiresAt != nil {
				fmt.Fprintf(w, "expires\t%s (%s)\n",
					session.ExpiresAt.Format("2006-01-02 15:04:05 MST"), util.FormatRemaining(*session.ExpiresAt, time.Now()))
			}

			return nil
		})
	})
}
