package demo

import (
	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/scenario"
	"github.com/roach88/teasim/internal/vdom"
)

// RouterModel tracks the current page.
type RouterModel struct {
	Page   string `json:"page"`
	Path   string `json:"path"`
	Visits int    `json:"visits"`
}

// RouterMsg is a router message.
type RouterMsg struct {
	Kind string `json:"kind"` // url_changed or link_clicked
	URL  string `json:"url,omitempty"`
	// External is set on link_clicked for links leaving the site.
	External bool `json:"external,omitempty"`
}

// RouterEffect is a browser command.
type RouterEffect struct {
	PushURL string `json:"push_url,omitempty"`
	Load    string `json:"load,omitempty"`
}

// Router is a single-page site with Home, About and Docs pages. Followed
// links come back as link_clicked messages; internal ones push the URL,
// external ones load it.
func Router() scenario.Definition[struct{}, RouterModel, RouterMsg, RouterEffect] {
	return scenario.Definition[struct{}, RouterModel, RouterMsg, RouterEffect]{
		Program: engine.Program[struct{}, RouterModel, RouterMsg, RouterEffect]{
			Init:   routerInit,
			Update: routerUpdate,
			View:   routerView,
		},
		Navigation: &engine.Navigation[RouterMsg]{
			OnURLChange: func(loc nav.Location) RouterMsg {
				return RouterMsg{Kind: "url_changed", URL: loc.String()}
			},
			OnURLRequest: func(req nav.URLRequest) RouterMsg {
				if req.IsInternal() {
					return RouterMsg{Kind: "link_clicked", URL: req.Internal.String()}
				}
				return RouterMsg{Kind: "link_clicked", URL: req.External, External: true}
			},
		},
		Messages: decode.Map2(func(kind, url string) RouterMsg {
			return RouterMsg{Kind: kind, URL: url}
		},
			decode.Field("kind", decode.String),
			decode.OneOf(decode.Field("url", decode.String), decode.Succeed("")),
		),
	}
}

func pageFor(path string) string {
	switch path {
	case "/":
		return "home"
	case "/about":
		return "about"
	default:
		return "not_found"
	}
}

func routerInit(_ struct{}, loc *nav.Location) (RouterModel, RouterEffect) {
	path := "/"
	if loc != nil {
		path = loc.Path
	}
	return RouterModel{Page: pageFor(path), Path: path}, RouterEffect{}
}

func routerUpdate(msg RouterMsg, model RouterModel) (RouterModel, RouterEffect) {
	switch msg.Kind {
	case "url_changed":
		loc, err := nav.Parse(msg.URL)
		if err != nil {
			return model, RouterEffect{}
		}
		model.Path = loc.Path
		model.Page = pageFor(loc.Path)
		model.Visits++
		return model, RouterEffect{}
	case "link_clicked":
		if msg.External {
			return model, RouterEffect{Load: msg.URL}
		}
		return model, RouterEffect{PushURL: msg.URL}
	}
	return model, RouterEffect{}
}

func routerView(model RouterModel) *vdom.Node[RouterMsg] {
	el := vdom.Element[RouterMsg]
	a := vdom.Attrs[RouterMsg]
	text := vdom.Text[RouterMsg]

	var body *vdom.Node[RouterMsg]
	switch model.Page {
	case "home":
		body = el("h1", nil, text("Welcome"))
	case "about":
		body = el("h1", nil, text("About us"))
	default:
		body = el("h1", nil, text("Page not found: "+model.Path))
	}

	return el("div", nil,
		el("nav", nil,
			el("a", a(vdom.Href[RouterMsg]("/")), text("Home")),
			el("a", a(vdom.Href[RouterMsg]("/about")), text("About")),
			el("a", a(vdom.Href[RouterMsg]("https://docs.example.com/guide")), text("Docs")),
		),
		el("main", a(vdom.ID[RouterMsg]("page"), vdom.Class[RouterMsg](model.Page)), body),
	)
}
