package changelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Increment keywords accepted by NextVersion besides the post-release prefix.
const (
	IncrementMajor = "major"
	IncrementMinor = "minor"
	IncrementPatch = "patch"
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// ParseVersion strictly parses a semantic version. A leading "v" is accepted.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return nil, &Error{Kind: ErrInvalidSemver, Version: s, Err: err}
	}
	return v, nil
}

// IsValidVersion reports whether s is a semantic version without a "v" prefix.
func IsValidVersion(s string) bool {
	return semverExact.MatchString(s)
}

// CompareVersions orders a and b by semantic version precedence, returning
// -1, 0 or 1. A pre-release whose first identifier equals postPrefix is a
// post-release and sorts after its base version.
func CompareVersions(a, b, postPrefix string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}

	baseA := semver.New(va.Major(), va.Minor(), va.Patch(), "", "")
	baseB := semver.New(vb.Major(), vb.Minor(), vb.Patch(), "", "")
	if c := baseA.Compare(baseB); c != 0 {
		return c, nil
	}

	rankA, rankB := releaseRank(va, postPrefix), releaseRank(vb, postPrefix)
	if rankA != rankB {
		if rankA < rankB {
			return -1, nil
		}
		return 1, nil
	}
	// same rank: pre-release identifiers decide, post.1 < post.2
	return va.Compare(vb), nil
}

// releaseRank orders pre-release (0) < release (1) < post-release (2).
func releaseRank(v *semver.Version, postPrefix string) int {
	pre := v.Prerelease()
	switch {
	case pre == "":
		return 1
	case postPrefix != "" && strings.SplitN(pre, ".", 2)[0] == postPrefix:
		return 2
	default:
		return 0
	}
}

// NextVersion computes the version following the current release for the
// given increment: "major", "minor", "patch" or the configured post-release
// prefix.
func (d *Document) NextVersion(increment string) (string, error) {
	current, ok := d.CurrentVersion()
	if !ok {
		return "", &Error{Kind: ErrNoPriorVersion, Version: increment}
	}
	return BumpVersion(current, increment, d.config.PostReleasePrefix)
}

// BumpVersion applies increment to current. major, minor and patch drop any
// pre-release or build metadata. The post-release increment appends
// "<prefix>.1" to a release, or bumps the trailing number of an existing
// pre-release.
func BumpVersion(current, increment, postPrefix string) (string, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(increment) {
	case IncrementMajor:
		return semver.New(v.Major()+1, 0, 0, "", "").String(), nil
	case IncrementMinor:
		return semver.New(v.Major(), v.Minor()+1, 0, "", "").String(), nil
	case IncrementPatch:
		return semver.New(v.Major(), v.Minor(), v.Patch()+1, "", "").String(), nil
	}

	if postPrefix == "" || increment != postPrefix {
		return "", &Error{Kind: ErrUnsupportedIncrement, Version: increment}
	}

	pre := v.Prerelease()
	if pre == "" {
		pre = postPrefix + ".0"
	}
	pre = bumpPrerelease(pre)
	return semver.New(v.Major(), v.Minor(), v.Patch(), pre, "").String(), nil
}

// bumpPrerelease increments the trailing number of pre, or appends ".1".
func bumpPrerelease(pre string) string {
	loc := trailingDigits.FindStringSubmatchIndex(pre)
	if loc == nil {
		return pre + ".1"
	}
	n, err := strconv.ParseUint(pre[loc[2]:loc[3]], 10, 64)
	if err != nil {
		return pre + ".1"
	}
	return fmt.Sprintf("%s%d", pre[:loc[2]], n+1)
}
