package identity

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skykintech/skyblog-core/internal/middleware"
)

// Kind distinguishes signed-in actors from anonymous visitors.
type Kind string

const (
	KindUser      Kind = "USER"
	KindAnonymous Kind = "ANONYMOUS"
)

// DefaultAddress is used when no forwarded address can be determined.
// Shared NATs and proxies collapse multiple visitors onto one address;
// this is a known accuracy limitation, not something to correct for.
const DefaultAddress = "0.0.0.0"

// Actor is the single identity used to deduplicate likes and attribute
// notifications. A signed-in user resolves to their user id; everyone
// else resolves to an address-derived identity.
type Actor struct {
	Kind    Kind
	UserID  string
	Address string
}

// Resolve produces the actor for a request. It always resolves to a value.
func Resolve(c *gin.Context) Actor {
	if uid := middleware.CurrentUserID(c); uid != "" {
		return Actor{Kind: KindUser, UserID: uid}
	}
	return Actor{Kind: KindAnonymous, Address: forwardedAddress(c)}
}

// Key returns the stored deduplication key for this actor.
func (a Actor) Key() string {
	if a.Kind == KindUser {
		return a.UserID
	}
	return "ip:" + a.Address
}

// IsUser reports whether the actor is a signed-in user.
func (a Actor) IsUser() bool { return a.Kind == KindUser }

func forwardedAddress(c *gin.Context) string {
	header := c.GetHeader("X-Forwarded-For")
	if first, _, found := strings.Cut(header, ","); found || strings.TrimSpace(first) != "" {
		if addr := strings.TrimSpace(first); addr != "" {
			return addr
		}
	}
	return DefaultAddress
}
