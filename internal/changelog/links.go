package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// LinkProvider renders version link references from templates.
type LinkProvider struct {
	host              string
	compareVersions   string
	unreleasedChanges string
	initialVersion    string
}

// NewLinkProvider builds a provider from templates. The host is sanitised
// with SanitizeHostURL. Empty templates fall back to the defaults.
func NewLinkProvider(t LinkTemplates) *LinkProvider {
	def := DefaultConfig().Links
	p := &LinkProvider{
		host:              SanitizeHostURL(t.HostURL),
		compareVersions:   t.CompareVersions,
		unreleasedChanges: t.UnreleasedChanges,
		initialVersion:    t.InitialVersion,
	}
	if p.compareVersions == "" {
		p.compareVersions = def.CompareVersions
	}
	if p.unreleasedChanges == "" {
		p.unreleasedChanges = def.UnreleasedChanges
	}
	if p.initialVersion == "" {
		p.initialVersion = def.InitialVersion
	}
	return p
}

// Host returns the sanitised host URL.
func (p *LinkProvider) Host() string { return p.host }

// CompareVersions renders the link comparing previous with version.
func (p *LinkProvider) CompareVersions(latest, version, previous string) (string, error) {
	return p.render(p.compareVersions, latest, version, previous)
}

// UnreleasedChanges renders the link comparing latest with HEAD.
func (p *LinkProvider) UnreleasedChanges(latest string) (string, error) {
	return p.render(p.unreleasedChanges, latest, Unreleased, latest)
}

// InitialVersion renders the link of the oldest version.
func (p *LinkProvider) InitialVersion(latest, version string) (string, error) {
	return p.render(p.initialVersion, latest, version, "")
}

func (p *LinkProvider) render(tmpl, latest, version, previous string) (string, error) {
	if tmpl == "" {
		return "", fmt.Errorf("link template for version %s is empty", version)
	}
	if strings.Contains(tmpl, "{host}") && p.host == "" {
		return "", fmt.Errorf("link template %q needs a host url", tmpl)
	}
	return ExpandTemplate(tmpl, map[string]string{
		"host":             p.host,
		"version":          version,
		"previous_version": previous,
		"latest_version":   latest,
	}), nil
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// ExpandTemplate replaces {name} placeholders with values. Unknown
// placeholders are left untouched.
func ExpandTemplate(tmpl string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := values[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

var (
	scpRemote = regexp.MustCompile(`^[\w.-]+@([^:/]+):(.+?)(?:\.git)?/?$`)
	sshRemote = regexp.MustCompile(`^(?:ssh|git)://(?:[\w.-]+@)?([^/:]+)(?::\d+)?/(.+?)(?:\.git)?/?$`)
)

// SanitizeHostURL converts git remote URLs into their https form:
// "git@github.com:org/repo.git" becomes "https://github.com/org/repo".
// A trailing ".git" or "/" is removed from http(s) URLs.
func SanitizeHostURL(url string) string {
	url = strings.TrimSpace(url)
	if m := scpRemote.FindStringSubmatch(url); m != nil && !strings.Contains(url, "://") {
		return "https://" + m[1] + "/" + m[2]
	}
	if m := sshRemote.FindStringSubmatch(url); m != nil {
		return "https://" + m[1] + "/" + m[2]
	}
	url = strings.TrimSuffix(url, "/")
	return strings.TrimSuffix(url, ".git")
}

// GenerateLinks assigns a link reference to every version. Adjacent pairs
// get a compare link, or the unreleased-changes link when the newer one is
// Unreleased. The oldest version gets the initial-version link. Nothing is
// changed when a link fails to render.
func (d *Document) GenerateLinks(p *LinkProvider) error {
	latest, _ := d.CurrentVersion()

	var versions []*Version
	for _, v := range d.versions {
		if v.version != "" {
			versions = append(versions, v)
		}
	}

	urls := make([]string, len(versions))
	for i, v := range versions {
		var (
			url string
			err error
		)
		switch {
		case i == len(versions)-1:
			url, err = p.InitialVersion(latest, v.version)
		case v.IsUnreleased():
			url, err = p.UnreleasedChanges(versions[i+1].version)
		default:
			url, err = p.CompareVersions(latest, v.version, versions[i+1].version)
		}
		if err != nil {
			return fmt.Errorf("generating link for %s: %w", v.version, err)
		}
		urls[i] = url
	}

	for i, v := range versions {
		v.SetLink(urls[i])
	}
	d.rebuildLinks()
	return nil
}

// rebuildLinks refreshes the document-level link index from the versions.
// References not bound to a version are kept after the version links.
func (d *Document) rebuildLinks() {
	links := map[string]*Element{}
	var order []string
	for _, v := range d.versions {
		if v.link != nil {
			links[v.version] = v.link
			order = append(order, v.version)
		}
	}
	for _, id := range d.linkOrder {
		if _, ok := links[id]; ok {
			continue
		}
		if el, ok := d.links[id]; ok && !d.isVersionID(id) {
			links[id] = el
			order = append(order, id)
		}
	}
	d.links = links
	d.linkOrder = order
}

func (d *Document) isVersionID(id string) bool {
	for _, v := range d.versions {
		if v.version == id {
			return true
		}
	}
	return false
}
