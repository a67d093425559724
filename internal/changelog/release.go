package changelog

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the release date format used in version headings.
const DateLayout = "2006-01-02"

// ReleaseOptions controls Release.
type ReleaseOptions struct {
	// Version is the explicit version to release. Ignored when Increment is set.
	Version string
	// Increment is "major", "minor", "patch" or the post-release prefix.
	Increment string
	// Link is bound to the released version as-is.
	Link string
	// AutoLink renders links for the released version and Unreleased.
	AutoLink bool
	// Links renders the AutoLink links. Nil means a provider built from the
	// document's link templates.
	Links *LinkProvider
	// Date overrides today's date.
	Date time.Time
}

// Release moves the Unreleased changes into a new version inserted directly
// below a now empty Unreleased block. It returns the released version.
//
// Failures are reported as *Error with kinds ErrNoPriorVersion,
// ErrUnsupportedIncrement, ErrInvalidSemver, ErrNoChanges, ErrVersionExists
// and ErrVersionNotIncreasing, checked in that order.
func (d *Document) Release(opts ReleaseOptions) (string, error) {
	version, err := d.resolveReleaseVersion(opts)
	if err != nil {
		return "", err
	}

	if !d.HasChanges() {
		return "", &Error{Kind: ErrNoChanges, Version: version}
	}

	for _, v := range d.versions {
		if v.version == version {
			return "", &Error{Kind: ErrVersionExists, Version: version}
		}
	}

	if current, ok := d.CurrentVersion(); ok {
		// an unparsable current version was already flagged by Validate
		if c, err := CompareVersions(version, current, d.config.PostReleasePrefix); err == nil && c <= 0 {
			return "", &Error{Kind: ErrVersionNotIncreasing, Version: version, Previous: current}
		}
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	unreleased := d.Unreleased()
	idx := d.indexOf(unreleased)

	var releasedURL, unreleasedURL string
	if opts.AutoLink {
		p := opts.Links
		if p == nil {
			p = NewLinkProvider(d.config.Links)
		}
		releasedURL, unreleasedURL, err = d.autoLinks(idx, version, p)
		if err != nil {
			return "", err
		}
	}

	released := NewVersion(version, date.Format(DateLayout))
	released.sections = unreleased.sections
	unreleased.ClearSections()

	versions := make([]*Version, 0, len(d.versions)+1)
	versions = append(versions, d.versions[:idx+1]...)
	versions = append(versions, released)
	versions = append(versions, d.versions[idx+1:]...)
	d.versions = versions

	if opts.AutoLink {
		released.SetLink(releasedURL)
		unreleased.SetLink(unreleasedURL)
	}
	if opts.Link != "" {
		released.SetLink(opts.Link)
	}
	d.rebuildLinks()

	return version, nil
}

func (d *Document) resolveReleaseVersion(opts ReleaseOptions) (string, error) {
	if opts.Increment != "" {
		return d.NextVersion(opts.Increment)
	}
	version := strings.TrimPrefix(strings.TrimSpace(opts.Version), "v")
	if !IsValidVersion(version) {
		return "", &Error{Kind: ErrInvalidSemver, Version: opts.Version}
	}
	return version, nil
}

// autoLinks renders the links of a version about to be released below the
// Unreleased block at idx, and the new Unreleased link.
func (d *Document) autoLinks(idx int, version string, p *LinkProvider) (string, string, error) {
	var (
		releasedURL string
		err         error
	)
	if previous := d.olderVersion(idx); previous != "" {
		releasedURL, err = p.CompareVersions(version, version, previous)
	} else {
		releasedURL, err = p.InitialVersion(version, version)
	}
	if err != nil {
		return "", "", fmt.Errorf("generating link for %s: %w", version, err)
	}

	unreleasedURL, err := p.UnreleasedChanges(version)
	if err != nil {
		return "", "", fmt.Errorf("generating link for %s: %w", Unreleased, err)
	}
	return releasedURL, unreleasedURL, nil
}

// olderVersion returns the first released version listed after index idx.
func (d *Document) olderVersion(idx int) string {
	for _, older := range d.versions[idx+1:] {
		if older.version != "" && !older.IsUnreleased() {
			return older.version
		}
	}
	return ""
}

func (d *Document) indexOf(v *Version) int {
	for i, candidate := range d.versions {
		if candidate == v {
			return i
		}
	}
	return -1
}
