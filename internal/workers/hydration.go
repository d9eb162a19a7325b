// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
)

// hydrationWorker rebuilds the cache for every known user once at startup.
// The server answers requests from a stale cache until the pass finishes,
// so the work runs in the background.
type hydrationWorker struct {
	hydration service.HydrationService
	logger    *logger.Logger
}

func NewHydrationWorker(hydration service.HydrationService, logger *logger.Logger) Worker {
	return &hydrationWorker{hydration: hydration, logger: logger}
}

func (w *hydrationWorker) Run() {
	go func() {
		w.logger.Info().Str("func", "*hydrationWorker.Run").Msg("startup hydration pass starting")

		if err := w.hydration.HydrateAll(context.Background()); err != nil {
			w.logger.Err(err).Str("func", "*hydrationWorker.Run").Msg("startup hydration pass failed")
		}
	}()
}
