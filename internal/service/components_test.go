package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsShutdown(t *testing.T) {
	t.Run("closes everything", func(t *testing.T) {
		llm, source := new(MockLLMClient), new(MockSource)
		llm.On("Close").Return(nil).Once()
		source.On("Close").Return(nil).Once()

		c := &Components{Source: source, LLM: llm}
		assert.NoError(t, c.Shutdown())
		llm.AssertExpectations(t)
		source.AssertExpectations(t)
	})

	t.Run("source is closed even when the LLM client fails", func(t *testing.T) {
		llmErr, sourceErr := errors.New("llm close"), errors.New("pool close")
		llm, source := new(MockLLMClient), new(MockSource)
		llm.On("Close").Return(llmErr).Once()
		source.On("Close").Return(sourceErr).Once()

		err := (&Components{Source: source, LLM: llm}).Shutdown()
		require.Error(t, err)
		assert.ErrorIs(t, err, llmErr)
		assert.ErrorIs(t, err, sourceErr)
		source.AssertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		c := &Components{}
		assert.False(t, c.HasCollaborators())
		assert.NoError(t, c.Shutdown())
	})
}
