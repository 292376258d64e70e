// Package authz provides the local authorization adapters: a role-based
// Authorizer driven by configuration and a parser that turns a signed JWT
// into the acting user.
package authz

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/platform/config"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface check.
var _ ports.Authorizer = (*RBAC)(nil)

// Role levels. A role satisfies a rule requiring any level at or below it.
const (
	levelNone = iota
	levelViewer
	levelEditor
	levelAdmin
)

var roleLevels = map[string]int{
	"viewer": levelViewer,
	"editor": levelEditor,
	"admin":  levelAdmin,
}

type ruleKey struct {
	action string
	scope  string
}

// RBAC authorizes actions by comparing the actor's highest role with the
// minimum role configured for the action. A rule bound to a scope takes
// precedence over the unscoped rule for the same action. Actions with no
// rule are denied.
type RBAC struct {
	rules map[ruleKey]int
}

// NewRBAC builds an RBAC authorizer from configured rules. Duplicate rules
// for the same action and scope are an error.
func NewRBAC(rules []config.AuthzRule) (*RBAC, error) {
	r := &RBAC{rules: make(map[ruleKey]int, len(rules))}
	for i, rule := range rules {
		level, ok := roleLevels[strings.ToLower(rule.Role)]
		if !ok {
			return nil, fmt.Errorf("authz rule %d: unknown role %q", i, rule.Role)
		}
		key := ruleKey{action: rule.Action, scope: rule.Scope}
		if _, dup := r.rules[key]; dup {
			return nil, fmt.Errorf("authz rule %d: duplicate rule for %s on %q", i, rule.Action, rule.Scope)
		}
		r.rules[key] = level
	}
	return r, nil
}

// Authorise implements ports.Authorizer. It never returns an error.
func (r *RBAC) Authorise(_ context.Context, actor domain.Actor, action, scope string) (bool, error) {
	if actor.IsGuest() {
		return false, nil
	}

	required, ok := r.rules[ruleKey{action: action, scope: scope}]
	if !ok {
		required, ok = r.rules[ruleKey{action: action}]
	}
	if !ok {
		return false, nil
	}
	return highestLevel(actor) >= required, nil
}

func highestLevel(actor domain.Actor) int {
	highest := levelNone
	for role, level := range roleLevels {
		if level > highest && actor.HasRole(role) {
			highest = level
		}
	}
	return highest
}
