package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/teasim/internal/ir"
)

func TestPrimitives(t *testing.T) {
	s, err := String(ir.String("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	n, err := Int(ir.Int(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = Bool(ir.String("true"))
	assert.EqualError(t, err, "expected a bool but found string")
}

func TestFloat(t *testing.T) {
	payload := ir.MustParse(`{"clientX":10.5,"clientY":3}`)

	x, err := Field("clientX", Float)(payload)
	require.NoError(t, err)
	assert.Equal(t, 10.5, x)

	y, err := Field("clientY", Float)(payload)
	require.NoError(t, err)
	assert.Equal(t, 3.0, y)

	_, err = Int(ir.Float(10.5))
	assert.EqualError(t, err, "expected an int but found float")

	_, err = Float(ir.String("1.5"))
	assert.EqualError(t, err, "expected a number but found string")
}

func TestFieldAndAt(t *testing.T) {
	payload := ir.MustParse(`{"target":{"value":"hello","checked":true}}`)

	value, err := At([]string{"target", "value"}, String)(payload)
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	_, err = At([]string{"target", "missing"}, String)(payload)
	assert.EqualError(t, err, `at target: expected an object with field "missing"`)

	_, err = At([]string{"target", "value"}, Int)(payload)
	assert.EqualError(t, err, "at target.value: expected an int but found string")
}

func TestIndexAndList(t *testing.T) {
	payload := ir.MustParse(`[1,2,3]`)

	second, err := Index(1, Int)(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	_, err = Index(5, Int)(payload)
	assert.Error(t, err)

	all, err := List(Int)(payload)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, all)

	_, err = List(String)(payload)
	assert.EqualError(t, err, "at [0]: expected a string but found int")
}

func TestMapCombinators(t *testing.T) {
	type keys struct {
		ctrl  bool
		shift bool
	}
	d := Map2(func(c, s bool) keys { return keys{c, s} }, Field("ctrlKey", Bool), Field("shiftKey", Bool))

	got, err := d(ir.MustParse(`{"ctrlKey":true,"shiftKey":false}`))
	require.NoError(t, err)
	assert.Equal(t, keys{true, false}, got)

	upper := Map(func(s string) int { return len(s) }, Field("y", String))
	n, err := upper(ir.MustParse(`{"y":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	sum := Map3(func(a, b, c int64) int64 { return a + b + c }, Index(0, Int), Index(1, Int), Index(2, Int))
	total, err := sum(ir.MustParse(`[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
}

func TestFailIsDeliberate(t *testing.T) {
	onlyPlainClick := AndThen(func(ctrl bool) Decoder[string] {
		if ctrl {
			return Fail[string]("ctrl-click opens a new tab")
		}
		return Succeed("navigate")
	}, Field("ctrlKey", Bool))

	got, err := onlyPlainClick(ir.MustParse(`{"ctrlKey":false}`))
	require.NoError(t, err)
	assert.Equal(t, "navigate", got)

	_, err = onlyPlainClick(ir.MustParse(`{"ctrlKey":true}`))
	require.Error(t, err)
	assert.True(t, IsDeliberate(err))

	_, err = onlyPlainClick(ir.MustParse(`{}`))
	require.Error(t, err)
	assert.False(t, IsDeliberate(err))
}

func TestOneOf(t *testing.T) {
	d := OneOf(Map(func(n int64) string { return "int" }, Int), String)

	got, err := d(ir.Int(1))
	require.NoError(t, err)
	assert.Equal(t, "int", got)

	got, err = d(ir.String("s"))
	require.NoError(t, err)
	assert.Equal(t, "s", got)

	_, err = d(ir.Bool(true))
	assert.ErrorContains(t, err, "all alternatives failed")
	assert.False(t, IsDeliberate(err))
}

func TestDecodeString(t *testing.T) {
	got, err := DecodeString(Field("y", String), `{"y":"fromJson"}`)
	require.NoError(t, err)
	assert.Equal(t, "fromJson", got)

	_, err = DecodeString(Field("y", String), `{"y":`)
	assert.Error(t, err)
}

func TestRunNilDecoder(t *testing.T) {
	var d Decoder[int]
	_, err := Run(d, ir.Int(1))
	assert.EqualError(t, err, "no decoder")
}
