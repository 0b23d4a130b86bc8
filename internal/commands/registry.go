package commands

import (
	"fmt"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/core/logging"
)

// newRegistry builds an alert registry from the loaded config.
func newRegistry(cfg *config.Config, opts ...alert.Option) (*alert.Registry, error) {
	opts = append([]alert.Option{alert.WithLogger(logging.Component("alerts"))}, opts...)

	reg, err := alert.NewRegistry(cfg.RegistryConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create registry: %w", err)
	}
	return reg, nil
}
