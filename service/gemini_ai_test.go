package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledSessionShortCircuits(t *testing.T) {
	chat := &GeminiChat{disabled: true}

	out := chat.SendStream(context.Background(), "oi")
	fragment, ok := <-out
	require.True(t, ok)
	assert.Equal(t, SessionDisabledMessage, fragment.Text)
	assert.NoError(t, fragment.Err)

	_, ok = <-out
	assert.False(t, ok)
}

func TestDisabledSessionStaysDisabled(t *testing.T) {
	chat := &GeminiChat{disabled: true}
	for i := 0; i < 3; i++ {
		var texts []string
		for fragment := range chat.SendStream(context.Background(), "oi") {
			texts = append(texts, fragment.Text)
		}
		assert.Equal(t, []string{SessionDisabledMessage}, texts)
	}
}
