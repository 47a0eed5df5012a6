package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/teasim/internal/decode"
	"github.com/roach88/teasim/internal/ir"
	"github.com/roach88/teasim/internal/query"
)

func TestDriver(t *testing.T) {
	d := Erase(Create(testProgram()), decode.String).
		Update(ir.String("A")).
		ClickButton("Click Me").
		Within([]query.Selector{query.ID("second")}, func(d Driver) Driver {
			return d.ClickButton("Twice")
		}).
		ShouldHave(query.Tag("li"), query.ExactText("SECOND")).
		ShouldHaveModel(ir.String("<INIT>;A;CLICK;SECOND")).
		ShouldHaveLastEffect(ir.String("LOG:SECOND"))

	r := d.Result()
	require.True(t, r.Pass, r.Failure)
	assert.Len(t, r.Trace, 4)

	html, err := d.View()
	require.NoError(t, err)
	assert.Contains(t, html, `<span id="model">&lt;INIT&gt;;A;CLICK;SECOND</span>`)
}

func TestDriverBadMessage(t *testing.T) {
	r := Erase(Create(testProgram()), decode.String).
		Update(ir.Int(3)).
		ClickButton("Click Me").
		Result()

	assert.False(t, r.Pass)
	assert.Equal(t, "dispatch", r.Category)
	assert.Equal(t, "update: message 3: expected a string but found int", r.Failure)
}

func TestDriverNavigation(t *testing.T) {
	r := Erase(CreateWithBaseURL(testProgram(), "http://localhost:3000/Main.elm"), decode.String).
		ClickLink("Settings", "/settings").
		ShouldHavePageChange("http://localhost:3000/settings").
		Result()
	assert.True(t, r.Pass, r.Failure)

	r = Erase(CreateWithNavigation(testProgram(), pathNavigation(), "https://example.com/"), decode.String).
		RouteChange("/x").
		ShouldHaveBrowserURL("https://example.com/x").
		ShouldHaveModel(ir.String("<INIT:/>;/x")).
		Result()
	assert.True(t, r.Pass, r.Failure)
}

func TestDriverModelMismatch(t *testing.T) {
	r := Erase(Create(testProgram()), decode.String).
		ShouldHaveModel(ir.String("other")).
		Result()
	assert.False(t, r.Pass)
	assert.Equal(t, "assertion", r.Category)
	assert.Equal(t, `shouldHaveModel: was "<INIT>"`, r.Failure)

	r = Erase(Create(testProgram()), decode.String).
		ShouldHaveLastEffect(ir.String("LOG:A")).
		Result()
	assert.Equal(t, `shouldHaveLastEffect: was "NONE"`, r.Failure)
}

func TestToValue(t *testing.T) {
	type model struct {
		Count int    `json:"count"`
		Name  string `json:"name"`
	}

	v, err := ToValue(model{Count: 2, Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, `{"count":2,"name":"x"}`, ir.Render(v))

	v, err = ToValue("plain")
	require.NoError(t, err)
	assert.Equal(t, ir.String("plain"), v)

	_, err = ToValue(1.5)
	assert.Error(t, err)
}
