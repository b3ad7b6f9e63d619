package main

import (
	"errors"
	"os"

	"github.com/piot/conclave-console/cmd"
	"github.com/piot/conclave-console/internal/domain"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var transportErr *domain.TransportError
		if errors.As(err, &transportErr) {
			os.Exit(transportErr.ExitCode())
		}
		os.Exit(1)
	}
}
