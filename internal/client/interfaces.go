// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the lifecycle contract for the runnable client agent.
type Client interface {
	// Run starts the agent and blocks until exit.
	Run() error
}
