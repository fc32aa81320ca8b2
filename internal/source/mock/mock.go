// ABOUTME: Mock update source for local testing and development.
// ABOUTME: Serves deterministic pending-update data without invoking wp-cli.

package mock

import (
	"context"

	"github.com/aghstrategies/check-wp-cli/internal/types"

	"github.com/sirupsen/logrus"
)

// Source implements the update source interface with canned data so the
// full report pipeline can be exercised without a WordPress install.
type Source struct {
	installPath string
	logger      *logrus.Logger
}

// NewSource creates a mock update source.
func NewSource(installPath string, logger *logrus.Logger) *Source {
	return &Source{installPath: installPath, logger: logger}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "mock"
}

// CoreUpdates returns one canned minor core update.
func (s *Source) CoreUpdates(ctx context.Context) ([]types.CoreUpdate, error) {
	s.logger.WithField("path", s.installPath).Debug("Serving mock core updates")

	return []types.CoreUpdate{
		{Version: "6.4.2", UpdateType: "minor"},
	}, nil
}

// ExtensionUpdates returns canned plugin records, including one that is
// already current, and an empty theme list.
func (s *Source) ExtensionUpdates(ctx context.Context, cat types.Category, includeDisabled bool) ([]types.ExtensionUpdate, error) {
	s.logger.WithFields(logrus.Fields{
		"category":         cat,
		"include_disabled": includeDisabled,
	}).Debug("Serving mock extension records")

	if cat != types.CategoryPlugin {
		return nil, nil
	}

	records := []types.ExtensionUpdate{
		{Title: "Akismet Anti-spam", Version: "5.3", UpdateVersion: "5.3.1"},
		{Title: "Yoast SEO", Version: "21.8", UpdateVersion: "21.9"},
		{Title: "Hello Dolly", Version: "1.7.2", UpdateVersion: ""},
	}
	if includeDisabled {
		records = append(records, types.ExtensionUpdate{Title: "Classic Editor", Version: "1.6.2", UpdateVersion: "1.6.3"})
	}
	return records, nil
}
