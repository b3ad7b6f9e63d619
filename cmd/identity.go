package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piot/conclave-console/internal/domain"
)

func newIdentityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the stored identity secret",
	}

	cmd.AddCommand(
		newIdentitySetCmd(a),
		newIdentityShowCmd(a),
	)

	return cmd
}

func newIdentitySetCmd(a *app) *cobra.Command {
	var userID uint64
	var secret string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write the identity secret file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity := domain.Identity{
				UserID: domain.UserID(userID),
				Secret: secret,
			}
			if err := a.identityStore.Save(cmd.Context(), identity); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "identity stored for user %X\n", userID)
			return err
		},
	}

	cmd.Flags().Uint64Var(&userID, "user-id", 0, "user id to authenticate as")
	cmd.Flags().StringVar(&secret, "secret", "", "secret used to label outgoing requests")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func newIdentityShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored identity (secret redacted)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := a.identityStore.Load(cmd.Context())
			if err != nil {
				return identityLoadError(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %X, secret set\n", uint64(identity.UserID))
			return err
		},
	}
}
