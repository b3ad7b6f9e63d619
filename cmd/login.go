package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

func newLoginCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify the stored identity against the auth service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := a.identityStore.Load(cmd.Context())
			if err != nil {
				return identityLoadError(err)
			}

			auth, _, err := a.sessions(identity)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var sessionID domain.SessionID
			err = runLoginSpinner(ctx, cmd.ErrOrStderr(), func(ctx context.Context) error {
				sessionID, err = awaitLogin(ctx, auth, a.tickInterval())
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "logged in, session id %X\n", uint64(sessionID))
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up on login after this long")

	return cmd
}

// awaitLogin polls the auth session at the console's tick rate until it
// settles in logged-in or failed.
func awaitLogin(ctx context.Context, auth ports.AuthSession, tick time.Duration) (domain.SessionID, error) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		auth.Update(time.Now())

		switch auth.State() {
		case domain.AuthStateLoggedIn:
			sessionID, ok := auth.SessionID()
			if !ok {
				return 0, fmt.Errorf("auth session logged in without a session id")
			}
			return sessionID, nil
		case domain.AuthStateFailed:
			return 0, domain.ErrLoginFailed
		case domain.AuthStateNotLoggedIn, domain.AuthStateLoggingIn:
		}

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("waiting for login: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
