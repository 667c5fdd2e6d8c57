package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/usecase"
	"cooked/internal/util"

	"github.com/spf13/cobra"
)

const customerWidth = 24

// NewBookingsCommand creates the bookings command.
func NewBookingsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List the signed-in actor's bookings",
		Long: `Pull the booking list for the persisted session and show each booking with
its effective status and the actions the session may take on it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookings(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runBookings(ctx context.Context, opts *RootOptions, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out}

	return withApp(ctx, opts, errOut, func(a *app) error {
		if err := a.bookings.Refresh(ctx); err != nil {
			return f.Fail(err)
		}
		views, err := a.bookings.List(ctx)
		if err != nil {
			return f.Fail(err)
		}

		return f.Success(views, func(w io.Writer) error {
			if len(views) == 0 {
				_, err := fmt.Fprintln(w, "no bookings")

				return err
			}
			fmt.Fprintln(w, "ID\tSTATUS\tCUSTOMER\tREQUESTED\tACTIONS")
			for _, v := range views {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.EffectiveStatus, util.Truncate(v.CustomerName, customerWidth), requestedAt(v.Booking), actionList(v.Actions))
			}

			return nil
		})
	})
}

// ActOptions holds flags for the act command.
type ActOptions struct {
	*RootOptions
	Rating  int
	Comment string
}

// NewActCommand creates the act command.
func NewActCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ActOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "act <booking-id> <action>",
		Short: "Perform an action on a booking",
		Long: `Perform one of accept, reject, complete_service, receive_payment (cook) or
cancel, rate (customer) on a booking. The action must be offered for the
booking's current status.`,
		Example: `  cookedctl act 12 accept
  cookedctl act 12 rate --rating 5 --comment "great dinner"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid booking id %q", args[0]))
			}

			return runAct(cmd.Context(), opts, id, entity.Action(strings.ToLower(args[1])), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVar(&opts.Rating, "rating", 0, "rating value 1-5, for rate")
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "rating comment, for rate")

	return cmd
}

func runAct(ctx context.Context, opts *ActOptions, id int64, action entity.Action, out, errOut io.Writer) error {
	f := &OutputFormatter{Format: opts.Format, Writer: out}
	if !action.IsValid() {
		return f.Fail(domainerrors.ErrValidationFailed.WithDetails("unknown action " + action.String()))
	}

	return withApp(ctx, opts.RootOptions, errOut, func(a *app) error {
		if err := a.bookings.Refresh(ctx); err != nil {
			return f.Fail(err)
		}

		var input *usecase.ActionInput
		if action == entity.ActionRate {
			input = &usecase.ActionInput{RatingValue: opts.Rating, Comment: opts.Comment}
		}

		view, err := a.bookings.Perform(ctx, id, action, input)
		if err != nil {
			return f.Fail(err)
		}

		return f.Success(view, func(w io.Writer) error {
			if view == nil {
				_, err := fmt.Fprintf(w, "booking %d: %s done\n", id, action)

				return err
			}
			_, err := fmt.Fprintf(w, "booking %d: %s done, now %s\n", id, action, view.EffectiveStatus)

			return err
		})
	})
}

func requestedAt(b *entity.Booking) string {
	if b.IsASAP() {
		return "asap"
	}

	return b.RequestedDateTime.Format("2006-01-02 15:04")
}

func actionList(actions []entity.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}

	return strings.Join(names, ",")
}
