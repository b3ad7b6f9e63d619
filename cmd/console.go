package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/piot/conclave-console/internal/adapters/console/readline"
	"github.com/piot/conclave-console/internal/adapters/render/notify"
	"github.com/piot/conclave-console/internal/application"
	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

func newConsoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive room console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			identity, err := a.identityStore.Load(ctx)
			if err != nil {
				return identityLoadError(err)
			}

			auth, dial, err := a.sessions(identity)
			if err != nil {
				return err
			}

			editor, err := readline.New(os.Stdin, os.Stdout)
			if err != nil {
				return fmt.Errorf("init line editor: %w", err)
			}

			console := application.NewConsoleController(editor, os.Stdout)

			// Route log lines through the suspend/print/resume protocol so
			// they never corrupt the in-progress input line.
			log := slog.New(slog.NewTextHandler(
				application.NewAnnounceWriter(console),
				&slog.HandlerOptions{Level: parseLogLevel(a.cfg.GetString("log.level"))},
			))

			appContext := application.NewContext(identity, auth, log)
			engine := application.NewEngine(
				appContext,
				application.NewPoller(dial),
				application.NewDetector(notify.NewRenderer()),
				console,
				application.NewDispatcher(application.NewConsoleRegistry(), os.Stdout,
					a.cfg.GetInt("console.response_buffer")),
				ports.SystemClock{},
				application.EngineOptions{
					Prompt:       a.cfg.GetString("console.prompt"),
					TickInterval: a.tickInterval(),
				},
			)

			return engine.Run(ctx)
		},
	}
}

func identityLoadError(err error) error {
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return fmt.Errorf("%w\nrun \"conclave identity set --user-id <id> --secret <secret>\" first", err)
	}
	return err
}
