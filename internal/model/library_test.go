package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adk-labs/platform/internal/model"
)

func TestSharedContentSanitization(t *testing.T) {
	t.Run("guide body keeps safe markup", func(t *testing.T) {
		g := &model.Guide{Body: "<p>Hello <b>world</b></p>"}

		require.NoError(t, g.BeforeSave(nil))
		assert.Equal(t, "<p>Hello <b>world</b></p>", g.Body)
	})

	t.Run("script tags are stripped", func(t *testing.T) {
		g := &model.Guide{Body: `<p>ok</p><script>alert("x")</script>`}

		require.NoError(t, g.BeforeSave(nil))
		assert.Equal(t, "<p>ok</p>", g.Body)
	})

	t.Run("announcement body is sanitized too", func(t *testing.T) {
		a := &model.Announcement{Body: `<img src=x onerror="steal()">text`}

		require.NoError(t, a.BeforeSave(nil))
		assert.NotContains(t, a.Body, "onerror")
	})
}

func TestSharedModelPartitioning(t *testing.T) {
	// Shared models must address the public schema explicitly; tenant
	// models resolve through the search path.
	assert.True(t, model.Tenant{}.IsSharedModel())
	assert.True(t, model.LibraryResource{}.IsSharedModel())
	assert.True(t, model.AgentTemplate{}.IsSharedModel())

	assert.False(t, model.User{}.IsSharedModel())
	assert.False(t, model.RefreshToken{}.IsSharedModel())
	assert.False(t, model.PasswordResetToken{}.IsSharedModel())
	assert.False(t, model.Workshop{}.IsSharedModel())
	assert.False(t, model.Bookmark{}.IsSharedModel())

	assert.Equal(t, "public.tenants", model.Tenant{}.TableName())
	assert.Equal(t, "users", model.User{}.TableName())
}
