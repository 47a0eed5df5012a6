// Package nav models the simulated browser location.
//
// Nothing here touches a real browser: a Location is parsed from a full URL
// string, and link targets are resolved against it with RFC 3986 reference
// resolution, then classified as internal (same origin) or external.
package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is a parsed absolute URL.
type Location struct {
	Origin   string // scheme://host[:port]
	Path     string // always starts with "/"
	Query    string // without the leading "?"
	Fragment string // without the leading "#"
	Full     string
}

// String returns the full URL.
func (l Location) String() string {
	return l.Full
}

// ParseError is returned for input that is not an absolute URL.
type ParseError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.Input, e.Reason)
}

// Parse parses an absolute URL with a scheme and a host.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, &ParseError{Input: raw, Reason: err.Error()}
	}
	return fromURL(raw, u)
}

func fromURL(raw string, u *url.URL) (Location, error) {
	if u.Scheme == "" {
		return Location{}, &ParseError{Input: raw, Reason: "missing scheme"}
	}
	if u.Host == "" {
		return Location{}, &ParseError{Input: raw, Reason: "missing host"}
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return Location{
		Origin:   u.Scheme + "://" + u.Host,
		Path:     u.EscapedPath(),
		Query:    u.RawQuery,
		Fragment: u.Fragment,
		Full:     u.String(),
	}, nil
}

func (l Location) url() *url.URL {
	u, err := url.Parse(l.Full)
	if err != nil {
		// Locations only come from Parse.
		panic(fmt.Sprintf("nav: corrupt location %q: %v", l.Full, err))
	}
	return u
}

// WithPath returns l with path, query and fragment taken from a path-only
// reference such as "/items?page=2".
func (l Location) WithPath(ref string) (Location, error) {
	link, err := Resolve(l, ref)
	if err != nil {
		return Location{}, err
	}
	return link.URL, nil
}
