// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
)

const defaultProbeInterval = 30 * time.Second

type connectivityMonitor struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu       sync.Mutex
	online   bool
	onOnline func()

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityMonitor constructs a monitor that starts in the OFFLINE
// state. The first Check (run by Start) establishes the real state, so a
// client launched without a network cannot mistake itself for online.
func NewConnectivityMonitor(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		adapter: serverAdapter,
		logger:  logger,
	}
}

// Online implements [ConnectivityMonitor].
func (m *connectivityMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// MarkOffline implements [ConnectivityMonitor]. Called by the queue and sync
// services whenever a delivery fails for transport reasons.
func (m *connectivityMonitor) MarkOffline() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online {
		m.logger.Warn().Str("func", "connectivityMonitor.MarkOffline").Msg("connection to server lost")
	}
	m.online = false
}

// Check implements [ConnectivityMonitor]. A successful probe while offline
// fires the OnOnline callback exactly once per transition.
func (m *connectivityMonitor) Check(ctx context.Context) bool {
	err := m.adapter.Health(ctx)

	m.mu.Lock()
	wasOnline := m.online
	m.online = err == nil
	fire := m.online && !wasOnline
	callback := m.onOnline
	m.mu.Unlock()

	if fire {
		m.logger.Info().Str("func", "connectivityMonitor.Check").Msg("connection to server restored")
		if callback != nil {
			callback()
		}
	}

	return err == nil
}

// OnOnline implements [ConnectivityMonitor].
func (m *connectivityMonitor) OnOnline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOnline = fn
}

// Start implements [ConnectivityMonitor]. It runs one immediate check and
// then probes the health endpoint every probeInterval for as long as the
// state is offline. While online no traffic is generated; loss is discovered
// by the next failing write.
func (m *connectivityMonitor) Start(ctx context.Context, probeInterval time.Duration) {
	if probeInterval <= 0 {
		probeInterval = defaultProbeInterval
	}

	m.Stop()

	m.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		m.Check(loopCtx)

		t := time.NewTicker(probeInterval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				if !m.Online() {
					m.Check(loopCtx)
				}
			}
		}
	}()
}

// Stop implements [ConnectivityMonitor]. Safe to call when the loop is not
// running.
func (m *connectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}
