package demo

import (
	"strings"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/scenario"
	"github.com/roach88/teasim/internal/vdom"
)

// Echo is the smallest useful program: the model is a string that starts as
// "<INIT>" (or the flags, or the start path) and every message is appended
// to it after a semicolon. The last effect is "LOG:<message>".
func Echo() scenario.Definition[string, string, string, string] {
	return scenario.Definition[string, string, string, string]{
		Program: engine.Program[string, string, string, string]{
			Init:   echoInit,
			Update: echoUpdate,
			View:   echoView,
		},
		Navigation: &engine.Navigation[string]{
			OnURLChange: func(loc nav.Location) string { return "URL:" + loc.Path },
		},
		Flags:    decode.String,
		Messages: decode.String,
	}
}

func echoInit(flags string, loc *nav.Location) (string, string) {
	switch {
	case loc != nil:
		return "<INIT:" + loc.Path + ">", "NONE"
	case flags != "":
		return "<INIT:" + flags + ">", "NONE"
	default:
		return "<INIT>", "NONE"
	}
}

func echoUpdate(msg, model string) (string, string) {
	return model + ";" + msg, "LOG:" + msg
}

func echoView(model string) *vdom.Node[string] {
	el := vdom.Element[string]
	a := vdom.Attrs[string]
	text := vdom.Text[string]

	history := strings.Split(model, ";")[1:]
	items := make([]*vdom.Node[string], len(history))
	for i, h := range history {
		items[i] = el("li", nil, text(h))
	}

	return el("main", nil,
		el("span", a(vdom.ID[string]("model")), text(model)),
		el("button", a(vdom.OnClick("CLICK")), text("Click Me")),
		el("label", a(vdom.For[string]("name")), text("Name")),
		el("input", a(vdom.ID[string]("name"), vdom.OnInput(func(s string) string { return "NAME:" + s }))),
		el("nav", nil,
			el("a", a(vdom.Href[string]("/settings")), text("Settings")),
			el("a", a(vdom.Href[string]("https://example.com/")), text("Elsewhere")),
		),
		el("ul", a(vdom.ID[string]("history")), items...),
	)
}
