package acl

import (
	"slices"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

// toAuthorizeRequest converts an actor and the requested permission to the
// downstream request body. Roles are always sent as an array, never null.
func toAuthorizeRequest(actor domain.Actor, action, scope string) authorizeRequestDTO {
	roles := slices.Clone(actor.Roles)
	if roles == nil {
		roles = []string{}
	}
	return authorizeRequestDTO{
		Subject: actor.ID,
		Name:    actor.Name,
		Roles:   roles,
		Action:  action,
		Scope:   scope,
	}
}
