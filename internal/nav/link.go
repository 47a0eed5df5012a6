package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkKind classifies a resolved href.
type LinkKind int

const (
	Internal LinkKind = iota
	External
)

func (k LinkKind) String() string {
	switch k {
	case Internal:
		return "internal"
	case External:
		return "external"
	default:
		return fmt.Sprintf("LinkKind(%d)", int(k))
	}
}

// Link is an href resolved against a location.
type Link struct {
	Kind LinkKind
	URL  Location
	Href string // the href as written
}

// Resolve resolves href against base. Relative references, fragments and
// absolute URLs with the base's origin are Internal; anything else is
// External. An href whose resolution has no host (mailto:, javascript:)
// is External with a Location carrying only Full.
func Resolve(base Location, href string) (Link, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return Link{}, &ParseError{Input: href, Reason: err.Error()}
	}
	resolved := base.url().ResolveReference(ref)
	if resolved.Host == "" {
		return Link{Kind: External, URL: Location{Full: resolved.String()}, Href: href}, nil
	}
	loc, err := fromURL(href, resolved)
	if err != nil {
		return Link{}, err
	}
	kind := External
	if loc.Origin == base.Origin {
		kind = Internal
	}
	return Link{Kind: kind, URL: loc, Href: href}, nil
}

// URLRequest is what a navigation-wired program receives when a link is
// followed: exactly one of Internal or External is set.
type URLRequest struct {
	Internal *Location
	External string
}

// Request builds the URLRequest for a resolved link.
func (l Link) Request() URLRequest {
	if l.Kind == Internal {
		loc := l.URL
		return URLRequest{Internal: &loc}
	}
	return URLRequest{External: l.URL.Full}
}

// IsInternal reports whether r targets the program's own origin.
func (r URLRequest) IsInternal() bool {
	return r.Internal != nil
}
