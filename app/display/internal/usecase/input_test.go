package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryInput_SubmitTrimsAndClears(t *testing.T) {
	in := QueryInput{Value: "  Wakad  "}
	var got []string

	ok := in.Submit(func(q string) { got = append(got, q) })

	assert.True(t, ok)
	assert.Equal(t, []string{"Wakad"}, got)
	assert.Equal(t, "", in.Value)
}

func TestQueryInput_WhitespaceIsNoop(t *testing.T) {
	in := QueryInput{Value: " \t\n "}
	called := false

	ok := in.Submit(func(string) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
	assert.Equal(t, " \t\n ", in.Value)
}

func TestQueryInput_DisabledWhileLoading(t *testing.T) {
	in := QueryInput{Value: "Akurdi", Loading: true}
	called := false

	assert.True(t, in.Disabled())
	assert.False(t, in.Submit(func(string) { called = true }))
	assert.False(t, called)
	assert.Equal(t, "Akurdi", in.Value)
}
