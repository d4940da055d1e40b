// Package scope computes, for a requesting user, the set of record owners
// that user is allowed to see. It is the single source of truth consumed by
// every record-list query; nothing else re-implements visibility checks.
package scope

import (
	"sort"

	"salespipe/internal/authz"
	"salespipe/internal/models"
)

// Scope is the resolved visibility predicate. When All is set the owner list
// is empty and every record is visible (admin). Otherwise OwnerIDs is the
// exact, sorted set of visible owners.
type Scope struct {
	Label    string `json:"label"`
	All      bool   `json:"all"`
	OwnerIDs []int  `json:"owner_ids,omitempty"`
}

// Allows reports whether a record owned by ownerID falls inside the scope.
func (s Scope) Allows(ownerID int) bool {
	if s.All {
		return true
	}
	for _, id := range s.OwnerIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}

// Assigned reports whether the profile's role-required hierarchy field is
// set. An unassigned profile is "pending": its records are excluded from
// every hierarchy rollup until an administrator completes the assignment.
// Under-assignment hides data rather than leaking it.
func Assigned(u models.UserProfile, entityMode string) bool {
	switch u.Role {
	case authz.RoleAdmin:
		return true
	case authz.RoleHead:
		if u.DivisionID == nil {
			return false
		}
		if entityMode == models.EntityModeMulti && u.EntityID == nil {
			return false
		}
		return true
	case authz.RoleManager, authz.RoleAccountManager:
		return u.DepartmentID != nil
	}
	return false
}

// Resolve computes the requester's scope over the given user population.
//
//	admin            -> everyone
//	head             -> owners sharing the head's division (and entity, when
//	                    entity mode is multi)
//	manager          -> owners sharing the manager's department
//	account_manager  -> the requester alone
//
// A pending manager or head collapses to self-only: their hierarchy position
// is unknown, so nothing beyond their own records can be attributed to them.
func Resolve(requester models.UserProfile, users []models.UserProfile, settings models.Settings) Scope {
	label := authz.ScopeLabel(requester.Role)

	if requester.Role == authz.RoleAdmin {
		return Scope{Label: label, All: true}
	}

	owners := map[int]struct{}{requester.ID: {}}

	if Assigned(requester, settings.EntityMode) {
		for _, u := range users {
			if u.ID == requester.ID {
				continue
			}
			if !Assigned(u, settings.EntityMode) {
				continue // pending profiles never enter a rollup
			}
			if visible(requester, u, settings.EntityMode) {
				owners[u.ID] = struct{}{}
			}
		}
	}

	ids := make([]int, 0, len(owners))
	for id := range owners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return Scope{Label: label, OwnerIDs: ids}
}

func visible(requester, owner models.UserProfile, entityMode string) bool {
	switch requester.Role {
	case authz.RoleHead:
		if !sameID(requester.DivisionID, owner.DivisionID) {
			return false
		}
		// Single entity mode collapses the entity dimension: a head covers
		// every matching division member irrespective of entity assignment.
		if entityMode == models.EntityModeMulti {
			return sameID(requester.EntityID, owner.EntityID)
		}
		return true
	case authz.RoleManager:
		return sameID(requester.DepartmentID, owner.DepartmentID)
	default:
		return false
	}
}

func sameID(a, b *int) bool {
	return a != nil && b != nil && *a == *b
}
