package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCodecInt(t *testing.T) {
	var c TextCodec[int]
	for _, tc := range []struct {
		tok     string
		want    int
		wantErr bool
	}{
		{tok: "42", want: 42},
		{tok: "-7", want: -7},
		{tok: "0", want: 0},
		{tok: "x", wantErr: true},
		{tok: "12abc", wantErr: true},
		{tok: "1.5", wantErr: true},
	} {
		t.Run(tc.tok, func(t *testing.T) {
			got, err := c.Parse(tc.tok)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.tok, c.Format(got))
		})
	}
}

func TestTextCodecOtherTypes(t *testing.T) {
	f, err := TextCodec[float64]{}.Parse("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	s, err := TextCodec[string]{}.Parse("word")
	require.NoError(t, err)
	assert.Equal(t, "word", s)

	b, err := TextCodec[bool]{}.Parse("true")
	require.NoError(t, err)
	assert.True(t, b)
	assert.Equal(t, "false", TextCodec[bool]{}.Format(false))
}

func TestOptions(t *testing.T) {
	o := NewOptions[int]()
	assert.IsType(t, TextCodec[int]{}, o.TokenCodec())
	assert.False(t, o.Full(1<<40))

	o = NewOptions(WithCapacity[int](3))
	assert.False(t, o.Full(2))
	assert.True(t, o.Full(3))
	assert.Equal(t, uint64(1), o.FreeSlots(2))
	assert.Zero(t, o.FreeSlots(5))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "stack", KindStack.String())
	assert.Equal(t, "queue", KindQueue.String())
	assert.Equal(t, "none", KindNone.String())
}
