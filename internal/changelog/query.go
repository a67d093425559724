package changelog

import (
	"strings"
)

// Get returns the version whose identifier matches version. A leading "v" is
// ignored and "unreleased" matches case-insensitively. When no identifier
// matches exactly, the first version containing the query is returned.
// A miss yields an Error of kind ErrVersionNotFound.
func (d *Document) Get(version string) (*Version, error) {
	normalized := NormalizeVersion(version)

	for _, v := range d.versions {
		if v.version == "" {
			continue
		}
		if NormalizeVersion(v.version) == normalized {
			return v, nil
		}
	}
	for _, v := range d.versions {
		if v.version != "" && normalized != "" && strings.Contains(NormalizeVersion(v.version), normalized) {
			return v, nil
		}
	}

	return nil, &Error{Kind: ErrVersionNotFound, Version: version, Available: d.ListVersions()}
}

// Unreleased returns the pending-changes block, or nil.
func (d *Document) Unreleased() *Version {
	for _, v := range d.versions {
		if v.IsUnreleased() {
			return v
		}
	}
	return nil
}

// ListVersions returns the identifiers of all versions, newest first.
// Headings without a recognisable identifier are skipped.
func (d *Document) ListVersions() []string {
	versions := make([]string, 0, len(d.versions))
	for _, v := range d.versions {
		if v.version != "" {
			versions = append(versions, v.version)
		}
	}
	return versions
}

// CurrentVersion returns the most recent released version.
func (d *Document) CurrentVersion() (string, bool) {
	for _, v := range d.versions {
		if v.version != "" && !v.IsUnreleased() {
			return v.version, true
		}
	}
	return "", false
}

// HasChanges reports whether the Unreleased block holds at least one item.
func (d *Document) HasChanges() bool {
	u := d.Unreleased()
	return u != nil && u.HasChanges()
}

// Add appends entry to section of the Unreleased block, creating the block
// at the top of the changelog when it does not exist yet.
func (d *Document) Add(section, entry string) {
	u := d.Unreleased()
	if u == nil {
		u = NewVersion(Unreleased, "")
		d.versions = append([]*Version{u}, d.versions...)
	}
	u.Add(section, entry)
}

// NormalizeVersion strips a leading "v" and lower-cases the identifier.
// Both "v1.2.0" and "1.2.0" normalize to "1.2.0".
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "v")
	version = strings.TrimPrefix(version, "V")
	return strings.ToLower(version)
}
