// ABOUTME: Factory for creating update sources.
// ABOUTME: Centralizes the choice between the real wp-cli adapter and the mock.

package source

import (
	"github.com/aghstrategies/check-wp-cli/internal/source/mock"
	"github.com/aghstrategies/check-wp-cli/internal/source/wpcli"

	"github.com/sirupsen/logrus"
)

// New creates an update source based on configuration. Mock mode wins so
// the full pipeline can be exercised without a WordPress install.
func New(config *Config, logger *logrus.Logger) (UpdateSource, error) {
	if config.MockMode {
		logger.Info("Using mock update source for testing")
		return mock.NewSource(config.InstallPath, logger), nil
	}
	return wpcli.NewSource(config.InstallPath, config.ToolPath, logger)
}
