package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/event"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/query"
	"github.com/roach88/teasim/internal/vdom"
)

// LinkLabeled matches an <a> whose text or aria-label is label.
func LinkLabeled(label string) query.Selector {
	label = strings.TrimSpace(label)
	return query.Selector{
		Description: fmt.Sprintf("link %q", label),
		Match: func(v vdom.View) bool {
			if v.TagName() != "a" {
				return false
			}
			if aria, ok := v.Attribute("aria-label"); ok && aria == label {
				return true
			}
			return strings.TrimSpace(v.TextContent()) == label
		},
	}
}

// ClickLink clicks the unique link labeled label after checking that its
// href attribute is exactly href.
//
// A click handler whose decoder succeeds and prevents the default action
// intercepts the click: only its message is dispatched. Otherwise the
// browser would follow the link:
//   - programs built with navigation hand the request to OnURLRequest, or
//     fail on an internal link when there is none (the program would reload
//     itself instead of routing);
//   - other programs record a page change to the resolved URL.
func (h Harness[Model, Msg, Effect]) ClickLink(label, href string) Harness[Model, Msg, Effect] {
	return h.interact("clickLink", func(h Harness[Model, Msg, Effect], root *vdom.Node[Msg]) (Harness[Model, Msg, Effect], error) {
		link, err := query.Find(root, LinkLabeled(label))
		if err != nil {
			return h, err
		}
		actual, ok := link.Attribute("href")
		if !ok {
			return h, &NavigationError{Message: fmt.Sprintf("%s has no href", vdom.Describe(link))}
		}
		if actual != href {
			return h, &NavigationError{Message: fmt.Sprintf("link href did not match: expected %q, found %q", href, actual)}
		}

		if link.Handles(event.Click) {
			resp, err := event.Dispatch(link, event.Click, vdom.LinkClickPayload())
			var df *event.DecodeFailureError
			switch {
			case err == nil && resp.PreventDefault:
				return h.apply(resp.Message), nil
			case err == nil:
				h = h.apply(resp.Message)
				if !h.machine.Running() {
					return h, nil
				}
			case errors.As(err, &df) && df.Deliberate():
				h.logger.Debug("link click not intercepted", "href", href, "reason", df.Err)
			default:
				return h, err
			}
		}
		return h.follow(href)
	})
}

// follow simulates the browser's default action for a link.
func (h Harness[Model, Msg, Effect]) follow(href string) (Harness[Model, Msg, Effect], error) {
	link, err := h.resolve(href)
	if err != nil {
		return h, err
	}
	if h.navigation == nil {
		return h.changePage(link.URL), nil
	}
	if h.navigation.OnURLRequest != nil {
		return h.apply(h.navigation.OnURLRequest(link.Request())), nil
	}
	if link.Kind == nav.Internal {
		return h, &NavigationError{Message: fmt.Sprintf(
			"link to %s is internal but nothing intercepts it; use a click handler that prevents the default action or set OnURLRequest",
			link.URL.Full)}
	}
	return h.changePage(link.URL), nil
}

// resolve resolves href against the current location. Without a location
// only absolute URLs resolve.
func (h Harness[Model, Msg, Effect]) resolve(href string) (nav.Link, error) {
	current, ok := h.machine.Location()
	if ok {
		return nav.Resolve(current, href)
	}
	loc, err := nav.Parse(href)
	if err != nil {
		return nav.Link{}, &NavigationError{Message: fmt.Sprintf(
			"cannot resolve %q without a base URL; create the harness with CreateWithBaseURL or CreateWithNavigation", href)}
	}
	return nav.Link{Kind: nav.External, URL: loc, Href: href}, nil
}

func (h Harness[Model, Msg, Effect]) changePage(loc nav.Location) Harness[Model, Msg, Effect] {
	h.machine = h.machine.ChangePage(loc)
	h.logger.Debug("page change", "url", loc.Full)
	return h
}

// RouteChange moves the simulated location to url, an absolute URL or a
// path resolved against the current location. Programs built with
// navigation receive OnURLChange for the new location.
func (h Harness[Model, Msg, Effect]) RouteChange(url string) Harness[Model, Msg, Effect] {
	h, ok := h.guard("routeChange")
	if !ok {
		return h
	}
	link, err := h.resolve(url)
	if err != nil {
		return h.fail(failure("routeChange", err))
	}
	if link.URL.Origin == "" {
		return h.fail(failure("routeChange", &NavigationError{Message: fmt.Sprintf("%q is not a web URL", url)}))
	}
	h.machine = h.machine.Navigate(link.URL)
	h.logger.Debug("route change", "url", link.URL.Full)
	if h.navigation == nil {
		return h
	}
	return h.apply(h.navigation.OnURLChange(link.URL))
}

// ExpectPageChange ends the chain. It passes only if the run ended with a
// full page load to exactly url.
func (h Harness[Model, Msg, Effect]) ExpectPageChange(url string) error {
	return h.expectPageChange(url).Done()
}

func (h Harness[Model, Msg, Effect]) expectPageChange(url string) Harness[Model, Msg, Effect] {
	if !h.machine.Running() {
		return h
	}
	page, ok := h.machine.PageChange()
	if !ok {
		return h.fail(engine.Failf(engine.CategoryNavigation, "expectPageChange",
			"expected a page change to %s, but no page change happened", url))
	}
	if page.Full != url {
		return h.fail(engine.Failf(engine.CategoryNavigation, "expectPageChange",
			"expected a page change to %s, but the page changed to %s", url, page.Full))
	}
	return h
}

// ExpectBrowserURL ends the chain. It passes if the simulated location is
// exactly url.
func (h Harness[Model, Msg, Effect]) ExpectBrowserURL(url string) error {
	return h.expectBrowserURL(url).Done()
}

func (h Harness[Model, Msg, Effect]) expectBrowserURL(url string) Harness[Model, Msg, Effect] {
	if !h.machine.Running() {
		return h
	}
	loc, ok := h.machine.Location()
	if !ok {
		return h.fail(engine.Failf(engine.CategoryNavigation, "expectBrowserUrl",
			"the program has no location; create the harness with CreateWithNavigation or CreateWithBaseURL"))
	}
	if loc.Full != url {
		return h.fail(engine.Failf(engine.CategoryNavigation, "expectBrowserUrl",
			"expected the browser URL to be %s, but it is %s", url, loc.Full))
	}
	return h
}
