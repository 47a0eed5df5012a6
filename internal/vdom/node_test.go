package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/teasim/internal/decode"
)

type msg string

var text = Text[msg]

func form() *Node[msg] {
	return Element("form", Attrs(OnSubmit[msg]("SUBMIT")),
		Element("label", Attrs(For[msg]("name")), text("Name")),
		Element("input", Attrs(ID[msg]("name"), Type[msg]("text"), OnInput(func(s string) msg { return msg("NAME:" + s) }))),
		Element("button", Attrs(OnClick[msg]("SAVE"), Disabled[msg](false)), text("Save "), Element[msg]("b", nil, text("now"))),
	)
}

func TestElementBuilders(t *testing.T) {
	f := form()

	assert.Equal(t, "form", f.Tag)
	assert.True(t, f.Handles("submit"))
	require.Len(t, f.Children, 3)

	input := f.Children[1]
	id, ok := input.Attribute("id")
	assert.True(t, ok)
	assert.Equal(t, "name", id)
	assert.True(t, input.Handles("input"))

	button := f.Children[2]
	_, disabled := button.Attribute("disabled")
	assert.False(t, disabled)
	assert.Equal(t, "Save ", button.OwnText())
	assert.Equal(t, "Save now", button.TextContent())
}

func TestHandlersDecode(t *testing.T) {
	f := form()

	resp, err := f.Children[1].Handlers["input"].Decoder(InputPayload("Ada"))
	require.NoError(t, err)
	assert.Equal(t, msg("NAME:Ada"), resp.Message)
	assert.False(t, resp.PreventDefault)

	resp, err = f.Handlers["submit"].Decoder(ClickPayload())
	require.NoError(t, err)
	assert.True(t, resp.PreventDefault)

	check := Element("input", Attrs(OnCheck(func(b bool) msg {
		if b {
			return "ON"
		}
		return "OFF"
	})))
	resp, err = check.Handlers["change"].Decoder(CheckPayload(true))
	require.NoError(t, err)
	assert.Equal(t, msg("ON"), resp.Message)
}

func TestPreventDefaultOnConditional(t *testing.T) {
	link := Element("a", Attrs(
		Href[msg]("/settings"),
		PreventDefaultOn("click", decode.AndThen(func(ctrl bool) decode.Decoder[Response[msg]] {
			if ctrl {
				return decode.Fail[Response[msg]]("let the browser open a tab")
			}
			return decode.Succeed(Response[msg]{Message: "GO", PreventDefault: true})
		}, decode.Field("ctrlKey", decode.Bool))),
	), text("Settings"))

	resp, err := link.Handlers["click"].Decoder(LinkClickPayload())
	require.NoError(t, err)
	assert.Equal(t, msg("GO"), resp.Message)
}

func TestDescribe(t *testing.T) {
	a := Element("a", Attrs(Href[msg]("/x"), ID[msg]("home")), text("Home"))
	assert.Equal(t, `<a href="/x" id="home">`, Describe(a))
	assert.Equal(t, `text "Home"`, Describe(a.Children[0]))
	assert.Equal(t, "<nil>", Describe[msg](nil))
}

func TestRender(t *testing.T) {
	out := Render(form())
	assert.Equal(t,
		`<form data-on-submit=""><label for="name">Name</label>`+
			`<input id="name" type="text" data-on-input=""/>`+
			`<button data-on-click="">Save <b>now</b></button></form>`,
		out)
}

func TestWalkPreOrder(t *testing.T) {
	var tags []string
	Walk(form(), func(v View) bool {
		if !v.IsText() {
			tags = append(tags, v.TagName())
		}
		return true
	})
	assert.Equal(t, []string{"form", "label", "input", "button", "b"}, tags)
}
