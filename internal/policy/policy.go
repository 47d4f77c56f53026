// Package policy holds the ownership predicate applied to salon and
// booking mutations. Reviews deliberately do not use it: a review can
// only ever be touched by its author, with no admin override.
package policy

import "github.com/BruksfildServices01/salon-booking/internal/models"

// CanMutate reports whether an actor may mutate a resource: the actor
// owns it, or the actor is an admin.
func CanMutate(actorID, ownerID uint, actorRole string) bool {
	return actorID == ownerID || actorRole == models.RoleAdmin
}
