// ABOUTME: Update source interface and shared configuration for adapters.
// ABOUTME: Defines the contract for querying a WordPress install for pending updates.

package source

import (
	"context"

	"github.com/aghstrategies/check-wp-cli/internal/types"
)

// UpdateSource abstracts how pending-update data is collected. The real
// implementation shells out to wp-cli; the mock serves canned records.
type UpdateSource interface {
	Name() string
	CoreUpdates(ctx context.Context) ([]types.CoreUpdate, error)
	ExtensionUpdates(ctx context.Context, cat types.Category, includeDisabled bool) ([]types.ExtensionUpdate, error)
}

// Config holds the settings needed to construct an update source.
type Config struct {
	InstallPath string // WordPress install path passed to wp-cli
	ToolPath    string // explicit wp-cli executable, empty means PATH lookup
	MockMode    bool   // serve canned data instead of invoking wp-cli
}
