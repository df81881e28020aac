package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/skykintech/skyblog-core/internal/middleware"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", nil)
	return c
}

func TestResolveSignedInUser(t *testing.T) {
	c := newTestContext(t)
	c.Set(middleware.ContextKeyUserID, "user-1")
	c.Request.Header.Set("X-Forwarded-For", "1.2.3.4")

	actor := Resolve(c)
	assert.Equal(t, KindUser, actor.Kind)
	assert.True(t, actor.IsUser())
	assert.Equal(t, "user-1", actor.Key())
}

func TestResolveAnonymousUsesFirstForwardedAddress(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")

	actor := Resolve(c)
	assert.Equal(t, KindAnonymous, actor.Kind)
	assert.False(t, actor.IsUser())
	assert.Equal(t, "1.2.3.4", actor.Address)
	assert.Equal(t, "ip:1.2.3.4", actor.Key())
}

func TestResolveAnonymousWithoutHeaderFallsBack(t *testing.T) {
	c := newTestContext(t)

	actor := Resolve(c)
	assert.Equal(t, KindAnonymous, actor.Kind)
	assert.Equal(t, DefaultAddress, actor.Address)
	assert.Equal(t, "ip:"+DefaultAddress, actor.Key())
}

func TestResolveAnonymousTrimsForwardedEntry(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("X-Forwarded-For", "  9.9.9.9  ")

	actor := Resolve(c)
	assert.Equal(t, "ip:9.9.9.9", actor.Key())
}
