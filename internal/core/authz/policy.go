// Package authz is the single authorization decision point. Use cases build
// an Action describing what an already-authenticated principal wants to do
// and ask Evaluate whether it may proceed. The evaluator is pure: no I/O, no
// clock, same inputs always produce the same decision. Callers fetch the
// resource owner beforehand.
package authz

import "github.com/inkwell/blog-platform/internal/core/domain"

// Deny reasons; safe to expose to an authenticated caller.
const (
	ReasonAdminRequired  = "admin required"
	ReasonNotSelfOrAdmin = "not self or admin"
	ReasonNotOwner       = "not the owner"
)

// Action describes one operation on one resource. ResourceOwnerID is empty
// when the action is not scoped to an owner.
type Action struct {
	ResourceKind        string
	ResourceOwnerID     string
	RequiresAdmin       bool
	RequiresSelfOrAdmin bool
}

// Decision is the outcome of one evaluation; never stored.
type Decision struct {
	Allowed bool
	Reason  string
}

// Evaluate applies the platform's access rules, first match wins:
//
//  1. RequiresAdmin and principal lacks admin → deny.
//  2. RequiresSelfOrAdmin → allow iff admin or principal owns the resource.
//  3. Owner-scoped action, principal is neither admin nor owner → deny.
//  4. Otherwise → allow.
func Evaluate(p domain.Principal, a Action) Decision {
	admin := p.IsAdmin()

	if a.RequiresAdmin && !admin {
		return Decision{Allowed: false, Reason: ReasonAdminRequired}
	}

	if a.RequiresSelfOrAdmin {
		if admin || (a.ResourceOwnerID != "" && p.ID == a.ResourceOwnerID) {
			return Decision{Allowed: true}
		}
		return Decision{Allowed: false, Reason: ReasonNotSelfOrAdmin}
	}

	if a.ResourceOwnerID != "" && !admin && p.ID != a.ResourceOwnerID {
		return Decision{Allowed: false, Reason: ReasonNotOwner}
	}

	return Decision{Allowed: true}
}
