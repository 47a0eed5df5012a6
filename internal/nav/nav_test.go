package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	loc, err := Parse("https://Example.com:8443/a/b?x=1#top")
	require.NoError(t, err)
	assert.Equal(t, Location{
		Origin:   "https://example.com:8443",
		Path:     "/a/b",
		Query:    "x=1",
		Fragment: "top",
		Full:     "https://example.com:8443/a/b?x=1#top",
	}, loc)

	loc, err = Parse("http://localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)
	assert.Equal(t, "http://localhost:3000/", loc.Full)
}

func TestParseRejects(t *testing.T) {
	for _, raw := range []string{"", "/path/only", "example.com/x", "http://%zz", "mailto:a@b.c"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestResolve(t *testing.T) {
	base, err := Parse("http://localhost:3000/Main.elm")
	require.NoError(t, err)

	tests := []struct {
		href string
		kind LinkKind
		full string
	}{
		{"/settings", Internal, "http://localhost:3000/settings"},
		{"settings", Internal, "http://localhost:3000/settings"},
		{"./a/../b", Internal, "http://localhost:3000/b"},
		{"#section", Internal, "http://localhost:3000/Main.elm#section"},
		{"?q=1", Internal, "http://localhost:3000/Main.elm?q=1"},
		{"http://localhost:3000/other", Internal, "http://localhost:3000/other"},
		{"https://example.com/link", External, "https://example.com/link"},
		{"http://localhost:4000/x", External, "http://localhost:4000/x"},
		{"//cdn.example.com/lib.js", External, "http://cdn.example.com/lib.js"},
		{"mailto:someone@example.com", External, "mailto:someone@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			link, err := Resolve(base, tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, link.Kind)
			assert.Equal(t, tt.full, link.URL.Full)
			assert.Equal(t, tt.href, link.Href)
		})
	}
}

func TestResolveBadHref(t *testing.T) {
	base, err := Parse("http://localhost:3000/")
	require.NoError(t, err)
	_, err = Resolve(base, "http://[::1")
	assert.Error(t, err)
}

func TestRequest(t *testing.T) {
	base, err := Parse("https://example.com/path")
	require.NoError(t, err)

	in, err := Resolve(base, "/new")
	require.NoError(t, err)
	req := in.Request()
	require.True(t, req.IsInternal())
	assert.Equal(t, "/new", req.Internal.Path)

	out, err := Resolve(base, "https://elsewhere.org/")
	require.NoError(t, err)
	req = out.Request()
	assert.False(t, req.IsInternal())
	assert.Equal(t, "https://elsewhere.org/", req.External)
}

func TestWithPath(t *testing.T) {
	base, err := Parse("https://example.com/path")
	require.NoError(t, err)
	next, err := base.WithPath("/items?page=2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/items?page=2", next.Full)
	assert.Equal(t, "page=2", next.Query)
}
