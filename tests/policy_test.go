package tests

import (
	"testing"

	"salestrack/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateOnlyRule(t *testing.T) {
	actor := policy.Actor{UserID: uuid.New(), Authenticated: true}
	cases := []struct {
		action  policy.Action
		allowed bool
	}{
		{policy.ActionList, true},
		{policy.ActionRetrieve, true},
		{policy.ActionCreate, true},
		{policy.ActionUpdate, false},
		{policy.ActionDelete, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			assert.Equal(t, tc.allowed, policy.CreateOnly(tc.action, actor, policy.Resource{}))
		})
	}
}

func TestIsOwnerOrReadOnlyRule(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	cases := []struct {
		name    string
		action  policy.Action
		actor   uuid.UUID
		allowed bool
	}{
		{"owner updates", policy.ActionUpdate, owner, true},
		{"owner deletes", policy.ActionDelete, owner, true},
		{"stranger updates", policy.ActionUpdate, stranger, false},
		{"stranger deletes", policy.ActionDelete, stranger, false},
		{"stranger reads", policy.ActionRetrieve, stranger, true},
		{"stranger lists", policy.ActionList, stranger, true},
		{"stranger creates", policy.ActionCreate, stranger, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actor := policy.Actor{UserID: tc.actor, Authenticated: true}
			res := policy.Resource{OwnerID: &owner}
			assert.Equal(t, tc.allowed, policy.IsOwnerOrReadOnly(tc.action, actor, res))
		})
	}
}

func TestIsOwnerOrReadOnlyWithoutOwner(t *testing.T) {
	// Route-level evaluation has no loaded object; mutation must be denied
	// rather than allowed by accident.
	actor := policy.Actor{UserID: uuid.New(), Authenticated: true}
	assert.False(t, policy.IsOwnerOrReadOnly(policy.ActionUpdate, actor, policy.Resource{}))
}

func TestIsAuthenticatedOrReadOnlyRule(t *testing.T) {
	anon := policy.Actor{}
	known := policy.Actor{UserID: uuid.New(), Authenticated: true}

	assert.True(t, policy.IsAuthenticatedOrReadOnly(policy.ActionList, anon, policy.Resource{}))
	assert.True(t, policy.IsAuthenticatedOrReadOnly(policy.ActionRetrieve, anon, policy.Resource{}))
	assert.False(t, policy.IsAuthenticatedOrReadOnly(policy.ActionCreate, anon, policy.Resource{}))
	assert.True(t, policy.IsAuthenticatedOrReadOnly(policy.ActionCreate, known, policy.Resource{}))
}

func TestAllShortCircuits(t *testing.T) {
	calls := 0
	deny := func(policy.Action, policy.Actor, policy.Resource) bool { calls++; return false }
	never := func(policy.Action, policy.Actor, policy.Resource) bool { calls++; return true }

	rule := policy.All(deny, never)
	assert.False(t, rule(policy.ActionList, policy.Actor{}, policy.Resource{}))
	assert.Equal(t, 1, calls, "second rule must not run after a denial")
}
