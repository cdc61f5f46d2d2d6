// Package policy decides whether a caller may perform an action on a resource.
// Rules are plain predicates over (action, actor, resource) combined with a
// short-circuit AND, so each endpoint's behavior reduces to a decision table.
package policy

import "github.com/google/uuid"

// Action is the abstract operation being attempted, independent of HTTP verb.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Read reports whether the action only observes state.
func (a Action) Read() bool { return a == ActionList || a == ActionRetrieve }

// Actor is the requesting identity as established by the auth middleware.
type Actor struct {
	UserID        uuid.UUID
	Authenticated bool
}

// Resource carries the object-level facts a rule may inspect. OwnerID is nil
// for route-level checks where no object has been loaded yet.
type Resource struct {
	OwnerID *uuid.UUID
}

// Rule returns true to allow the action, false to deny it.
type Rule func(action Action, actor Actor, res Resource) bool

// All combines rules with short-circuit AND: the first denial wins.
func All(rules ...Rule) Rule {
	return func(action Action, actor Actor, res Resource) bool {
		for _, r := range rules {
			if !r(action, actor, res) {
				return false
			}
		}
		return true
	}
}

// IsAuthenticated denies every action from an anonymous caller.
func IsAuthenticated(_ Action, actor Actor, _ Resource) bool {
	return actor.Authenticated
}

// IsAuthenticatedOrReadOnly lets anyone read but requires a known identity
// for anything that writes.
func IsAuthenticatedOrReadOnly(action Action, actor Actor, _ Resource) bool {
	return action.Read() || actor.Authenticated
}

// CreateOnly is the article-catalog rule: rows may be created and read, but
// never updated or deleted through the API.
func CreateOnly(action Action, _ Actor, _ Resource) bool {
	return action == ActionCreate || action.Read()
}

// IsOwnerOrReadOnly permits reads and creation for everyone, and mutation only
// when the actor owns the resource. Ownership is established at creation time,
// so create needs no owner match.
func IsOwnerOrReadOnly(action Action, actor Actor, res Resource) bool {
	if action.Read() || action == ActionCreate {
		return true
	}
	return res.OwnerID != nil && *res.OwnerID == actor.UserID
}
