// ABOUTME: Common types shared across the check-wp-cli probe.
// ABOUTME: Defines update records as emitted by wp-cli and the category ids.

package types

// Category identifies one of the scanned update kinds.
type Category string

const (
	CategoryCore   Category = "core"
	CategoryTheme  Category = "theme"
	CategoryPlugin Category = "plugin"
)

// Header returns the section header line introducing a category's details.
func (c Category) Header() string {
	switch c {
	case CategoryCore:
		return "Core updates:"
	case CategoryTheme:
		return "Theme updates:"
	case CategoryPlugin:
		return "Plugin updates:"
	default:
		return string(c) + ":"
	}
}

// CoreUpdate is one pending core update as reported by
// `wp core check-update --format=json`.
type CoreUpdate struct {
	Version    string `json:"version"`     // Version being offered
	UpdateType string `json:"update_type"` // "major" or "minor"
}

// ExtensionUpdate is one plugin or theme record as reported by
// `wp plugin list` / `wp theme list` with --format=json.
type ExtensionUpdate struct {
	Title         string `json:"title"`         // Human-readable name
	Version       string `json:"version"`        // Installed version
	UpdateVersion string `json:"update_version"` // Available version, empty if current
}

// HasUpdate reports whether the record carries a pending update. wp-cli
// leaves update_version empty for extensions that are already current.
func (e ExtensionUpdate) HasUpdate() bool {
	return e.UpdateVersion != ""
}
