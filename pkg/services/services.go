package services

import (
	"context"
	"log/slog"
)

type Service interface {
	Name() string
	Start(ctx context.Context) error
}

type Group []Service

// Start runs all services and blocks until they all return. The first error
// cancels the rest.
func (g Group) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(g))
	for _, svc := range g {
		go func(svc Service) {
			slog.Info("starting service", "name", svc.Name())
			errCh <- svc.Start(ctx)
		}(svc)
	}

	var firstErr error
	for range g {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}
