// Package permissions is the authorization engine: pure predicates over the
// caller's identity, the HTTP method and (for author-scoped resources) the
// loaded object. Handlers and services compose these with explicit OR; there
// is no permission hierarchy, a request passes when any channel allows it.
package permissions

import (
	"net/http"

	"reviewhub/internal/api/models"
)

type Role string

const (
	RoleAdmin     Role = models.RoleAdmin
	RoleModerator Role = models.RoleModerator
	RoleUser      Role = models.RoleUser
)

// moderatorMethods are the mutations a moderator may apply to someone
// else's review or comment.
var moderatorMethods = map[string]bool{
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Identity is the verified caller. The zero value is the anonymous caller.
type Identity struct {
	UserID        string
	Username      string
	Role          Role
	Superuser     bool
	Authenticated bool
}

// FromUser builds an authenticated identity from a stored user.
func FromUser(u *models.User) Identity {
	ident := Identity{
		UserID:        u.ID,
		Role:          Role(u.Role),
		Superuser:     u.Superuser,
		Authenticated: true,
	}
	if u.Username != nil {
		ident.Username = *u.Username
	}
	return ident
}

// IsSafeMethod reports whether the method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin reports whether the caller holds the admin role or the superuser
// override.
func (id Identity) IsAdmin() bool {
	return id.Authenticated && id.Role == RoleAdmin || id.Superuser
}

func (id Identity) IsModerator() bool {
	return id.Authenticated && id.Role == RoleModerator
}

// AdminOnly is the phase-1 gate for admin-only resources (user management,
// catalog writes reachable without an object).
func AdminOnly(id Identity) bool {
	return id.IsAdmin()
}

// AdminOrReadOnly is the phase-1 gate for catalog resources: reads are open
// to everyone, writes require admin.
func AdminOrReadOnly(id Identity, method string) bool {
	return IsSafeMethod(method) || id.IsAdmin()
}

// AuthenticatedOrReadOnly is the phase-1 gate for author-scoped resources;
// the object-level decision happens in AuthorOrModerator once the target is
// loaded.
func AuthenticatedOrReadOnly(id Identity, method string) bool {
	return IsSafeMethod(method) || id.Authenticated
}

// AuthorOrModerator is the phase-2 object check for reviews and comments.
// A moderator may PATCH or DELETE regardless of authorship; the author may do
// anything to their own object.
func AuthorOrModerator(id Identity, method string, authorID string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if moderatorMethods[method] && id.IsModerator() {
		return true
	}
	return id.Authenticated && id.UserID == authorID
}

// CanMutateAuthored is the full route composition for review/comment
// mutations: the admin channel and the author/moderator channel are
// independent, either passing authorizes the request.
func CanMutateAuthored(id Identity, method string, authorID string) bool {
	return AdminOrReadOnly(id, method) || AuthorOrModerator(id, method, authorID)
}
