package query

import (
	"testing"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/teasim/internal/vdom"
)

func named(s string) func(string) msg {
	return func(v string) msg { return msg(s + ":" + v) }
}

func signup() *vdom.Node[msg] {
	return vdom.Element("form", nil,
		vdom.Element("label", vdom.Attrs(vdom.For[msg]("email")), text("Email")),
		vdom.Element("input", vdom.Attrs(vdom.ID[msg]("email"), vdom.OnInput(named("EMAIL")))),
		vdom.Element("label", nil,
			text("Bio"),
			vdom.Element("textarea", vdom.Attrs(vdom.OnInput(named("BIO")))),
		),
		vdom.Element("input", vdom.Attrs(vdom.AriaLabel[msg]("Search"), vdom.OnInput(named("SEARCH")))),
		vdom.Element("label", vdom.Attrs(vdom.For[msg]("nothing")), text("Orphan")),
		vdom.Element("input", vdom.Attrs(vdom.ID[msg]("other"), vdom.OnInput(named("OTHER")))),
	)
}

func TestFieldForLabel(t *testing.T) {
	tests := []struct {
		label string
		tag   string
		want  msg
	}{
		{"Email", "input", "EMAIL:x"},
		{"Bio", "textarea", "BIO:x"},
		{"Search", "input", "SEARCH:x"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			field, err := FieldForLabel(signup(), tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, field.Tag)

			resp, err := field.Handlers["input"].Decoder(vdom.InputPayload("x"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestFieldForLabelErrors(t *testing.T) {
	_, err := FieldForLabel(signup(), "Orphan")
	var le *LabelError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, err.Error(), `no field associated with label "Orphan"`)

	_, err = FieldForLabel(signup(), "Phone")
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "no <label> with that text", le.Reason)
}

func TestFieldForLabelAmbiguous(t *testing.T) {
	tree := vdom.Element("div", nil,
		vdom.Element("label", vdom.Attrs(vdom.For[msg]("a")), text("Name")),
		vdom.Element[msg]("input", vdom.Attrs(vdom.ID[msg]("a"))),
		vdom.Element("label", vdom.Attrs(vdom.For[msg]("b")), text("Name")),
		vdom.Element[msg]("input", vdom.Attrs(vdom.ID[msg]("b"))),
	)
	_, err := FieldForLabel(tree, "Name")
	assert.True(t, IsAmbiguous(err))
}

func TestViewMatchers(t *testing.T) {
	tree := signup()

	pass, _ := Has(Tag("textarea")).Test(tree)
	assert.True(t, pass)

	pass, desc := Has(Tag("select")).Test(tree)
	assert.False(t, pass)
	assert.Contains(t, desc, `no element matches [tag "select"]`)

	pass, _ = HasNot(Tag("select")).Test(tree)
	assert.True(t, pass)

	m.In(t).Assert(tree, HasCount(3, Tag("input")))

	pass, _ = Has(Tag("div")).Test("not a tree")
	assert.False(t, pass)
}
