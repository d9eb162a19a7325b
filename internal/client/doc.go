// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the offline-capable client agent runtime.
//
// It wires the durable write queue, the server adapter, and the background
// synchronization jobs into a single process lifecycle.
package client
