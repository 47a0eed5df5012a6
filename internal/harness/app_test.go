package harness

import (
	"strings"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/engine"
	"github.com/roach88/teasim/internal/nav"
	"github.com/roach88/teasim/internal/vdom"
)

// The test program keeps a string model and appends ";<msg>" on every
// update. Its last effect is "LOG:<msg>".

var text = vdom.Text[string]

func testInit(flags string, loc *nav.Location) (string, string) {
	switch {
	case loc != nil:
		return "<INIT:" + loc.Path + ">", "NONE"
	case flags != "":
		return "<INIT:" + flags + ">", "NONE"
	default:
		return "<INIT>", "NONE"
	}
}

func testUpdate(msg, model string) (string, string) {
	return model + ";" + msg, "LOG:" + msg
}

func prefixed(p string) func(string) string {
	return func(s string) string { return p + s }
}

// spaClick intercepts plain clicks and lets modified clicks through.
func spaClick(msg string) vdom.Option[string] {
	return vdom.PreventDefaultOn("click", decode.AndThen(func(ctrl bool) decode.Decoder[vdom.Response[string]] {
		if ctrl {
			return decode.Fail[vdom.Response[string]]("open in new tab")
		}
		return decode.Succeed(vdom.Response[string]{Message: msg, PreventDefault: true})
	}, decode.Field("ctrlKey", decode.Bool)))
}

func onKey() vdom.Option[string] {
	return vdom.Custom("keydown", decode.AndThen(func(key string) decode.Decoder[vdom.Response[string]] {
		if key != "Enter" {
			return decode.Fail[vdom.Response[string]]("not enter")
		}
		return decode.Succeed(vdom.Response[string]{Message: "KEY:" + key})
	}, decode.Field("key", decode.String)))
}

func testView(model string) *vdom.Node[string] {
	el := vdom.Element[string]
	a := vdom.Attrs[string]
	return el("main", nil,
		el("span", a(vdom.ID[string]("model")), text(model)),
		el("button", a(vdom.OnClick("CLICK")), text("Click Me")),
		el("button", a(vdom.OnClick("OFF"), vdom.Disabled[string](true)), text("Off")),
		el("label", a(vdom.For[string]("name")), text("Name")),
		el("input", a(vdom.ID[string]("name"), vdom.OnInput(prefixed("NAME:")))),
		el("label", nil, text("Bio"), el("textarea", a(vdom.OnInput(prefixed("BIO:"))))),
		el("label", a(vdom.For[string]("agree")), text("Agree")),
		el("input", a(vdom.ID[string]("agree"), vdom.Type[string]("checkbox"), vdom.OnCheck(func(b bool) string {
			if b {
				return "AGREE:yes"
			}
			return "AGREE:no"
		}))),
		el("label", a(vdom.For[string]("color")), text("Color")),
		el("select", a(vdom.ID[string]("color"), vdom.OnChange(prefixed("COLOR:"))),
			el("option", a(vdom.Value[string]("r")), text("Red")),
			el("option", nil, text("Green")),
		),
		el("nav", nil,
			el("a", a(vdom.Href[string]("/settings")), text("Settings")),
			el("a", a(vdom.Href[string]("/spa"), spaClick("SPA")), text("Spa")),
			el("a", a(vdom.Href[string]("https://example.com/link")), text("External")),
		),
		el("section", a(vdom.ID[string]("first")), el("button", a(vdom.OnClick("FIRST")), text("Twice"))),
		el("section", a(vdom.ID[string]("second")), el("button", a(vdom.OnClick("SECOND")), text("Twice"))),
		el("form", a(vdom.OnSubmit("SUBMIT")),
			el("input", a(vdom.Type[string]("submit"), vdom.Value[string]("Send"))),
			el("button", a(vdom.Type[string]("button")), text("Nothing")),
		),
		el("div", a(vdom.ID[string]("keys"), onKey())),
		el("ul", nil, items(model)...),
	)
}

// items renders one <li> per applied message.
func items(model string) []*vdom.Node[string] {
	parts := strings.Split(model, ";")[1:]
	out := make([]*vdom.Node[string], len(parts))
	for i, p := range parts {
		out[i] = vdom.Element("li", nil, text(p))
	}
	return out
}

func testProgram() engine.Program[string, string, string, string] {
	return engine.Program[string, string, string, string]{
		Init:   testInit,
		Update: testUpdate,
		View:   testView,
	}
}

func pathNavigation() engine.Navigation[string] {
	return engine.Navigation[string]{
		OnURLChange: func(loc nav.Location) string { return loc.Path },
	}
}
