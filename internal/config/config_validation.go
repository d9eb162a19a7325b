// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The checks stay minimal: unset optional fields get defaults at the point
// of use, so only settings whose absence cannot be compensated for fail here.
func (cfg *StructuredConfig) validate() error {
	return nil
}

// validate ensures the client runtime has a durable queue location. An
// in-memory queue would silently violate the restart-survival requirement,
// so "memory" DSNs are rejected outright.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" {
		return ErrNoServerAddress
	}

	return nil
}
