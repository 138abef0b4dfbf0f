package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundStartsAbsent(t *testing.T) {
	r := NewRound()
	story, ok := r.Get()
	assert.False(t, ok)
	assert.Nil(t, story)
}

func TestRoundRoundTrip(t *testing.T) {
	r := NewRound()
	for _, in := range []string{`"STORY-42"`, `{"title":"login","points":[1,2]}`, `null`, `17`} {
		r.Set(json.RawMessage(in))
		story, ok := r.Get()
		assert.True(t, ok)
		assert.Equal(t, json.RawMessage(in), story)
	}
}

func TestRoundKeepsOwnCopy(t *testing.T) {
	r := NewRound()
	in := json.RawMessage(`"abc"`)
	r.Set(in)
	in[1] = 'z'

	story, _ := r.Get()
	assert.Equal(t, json.RawMessage(`"abc"`), story)
}
