package vertex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francis-ohara/model-garden-agent/engine/core"
	"github.com/francis-ohara/model-garden-agent/engine/vertex"
)

func TestParseModelID(t *testing.T) {
	t.Run("Should parse publisher model with version", func(t *testing.T) {
		id, err := vertex.ParseModelID("google/gemma3@gemma-3-1b-it")
		require.NoError(t, err)
		assert.Equal(t, "google", id.Publisher)
		assert.Equal(t, "gemma3", id.Model)
		assert.Equal(t, "gemma-3-1b-it", id.Version)
		assert.False(t, id.HuggingFace)
	})
	t.Run("Should parse full resource name", func(t *testing.T) {
		id, err := vertex.ParseModelID("publishers/meta/models/llama3-1@llama-3.1-8b-instruct")
		require.NoError(t, err)
		assert.Equal(t, "meta", id.Publisher)
		assert.Equal(t, "llama3-1", id.Model)
		assert.Equal(t, "llama-3.1-8b-instruct", id.Version)
		assert.False(t, id.HuggingFace)
	})
	t.Run("Should treat unversioned two-segment IDs as Hugging Face models", func(t *testing.T) {
		id, err := vertex.ParseModelID("Qwen/Qwen3-1.7B")
		require.NoError(t, err)
		assert.True(t, id.HuggingFace)
		assert.Equal(t, "qwen/qwen3-1.7b", id.HuggingFaceID())
	})
	t.Run("Should keep unversioned resource names in the publisher catalog", func(t *testing.T) {
		id, err := vertex.ParseModelID("publishers/google/models/gemma3")
		require.NoError(t, err)
		assert.False(t, id.HuggingFace)
		assert.Equal(t, "", id.Version)
	})
	t.Run("Should lowercase mixed-case input", func(t *testing.T) {
		id, err := vertex.ParseModelID("  Google/Gemma3@Gemma-3-1B-IT ")
		require.NoError(t, err)
		assert.Equal(t, "google/gemma3@gemma-3-1b-it", id.String())
	})
	t.Run("Should reject empty input", func(t *testing.T) {
		_, err := vertex.ParseModelID("   ")
		require.Error(t, err)
		assert.Equal(t, vertex.ErrCodeInvalidArgument, core.CodeOf(err))
	})
	t.Run("Should reject IDs without a publisher segment", func(t *testing.T) {
		_, err := vertex.ParseModelID("gemma3")
		require.Error(t, err)
		assert.True(t, vertex.IsInvalidArgument(err))
	})
	t.Run("Should reject empty version after separator", func(t *testing.T) {
		_, err := vertex.ParseModelID("google/gemma3@")
		require.Error(t, err)
		assert.True(t, vertex.IsInvalidArgument(err))
	})
}

func TestModelID_ResourceName(t *testing.T) {
	t.Run("Should build versioned publisher resource name", func(t *testing.T) {
		id, err := vertex.ParseModelID("google/gemma3@gemma-3-1b-it")
		require.NoError(t, err)
		assert.Equal(t, "publishers/google/models/gemma3@gemma-3-1b-it", id.ResourceName())
	})
	t.Run("Should build unversioned resource name for Hugging Face models", func(t *testing.T) {
		id, err := vertex.ParseModelID("qwen/qwen3-1.7b")
		require.NoError(t, err)
		assert.Equal(t, "publishers/qwen/models/qwen3-1.7b", id.ResourceName())
	})
}
