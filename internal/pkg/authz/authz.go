package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Authorizer answers role/permission questions with a casbin RBAC enforcer.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer loads role inheritance and permissions from the user package.
func NewAuthorizer() (*Authorizer, error) {
	return NewAuthorizerWith(user.RoleParents, user.RolePermissions)
}

func NewAuthorizerWith(parents map[user.Role]user.Role, perms map[user.Role][]user.Permission) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: invalid model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to create enforcer: %w", err)
	}

	for role, parent := range parents {
		if _, err := enforcer.AddGroupingPolicy(SubjectFromRole(role), SubjectFromRole(parent)); err != nil {
			return nil, fmt.Errorf("authz: failed to add role %s: %w", role, err)
		}
	}
	for role, list := range perms {
		for _, p := range list {
			obj, act := split(p)
			if _, err := enforcer.AddPolicy(SubjectFromRole(role), obj, act); err != nil {
				return nil, fmt.Errorf("authz: failed to add policy %s for %s: %w", p, role, err)
			}
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func SubjectFromRole(role user.Role) string {
	r := strings.TrimSpace(strings.ToLower(string(role)))
	if r == "" {
		r = "anonymous"
	}
	return "role:" + r
}

// Authorize reports whether role holds permission, directly or by inheritance.
func (a *Authorizer) Authorize(role user.Role, permission user.Permission) (bool, error) {
	obj, act := split(permission)
	return a.enforcer.Enforce(SubjectFromRole(role), obj, act)
}

// Permissions lists every permission role holds, including inherited ones.
func (a *Authorizer) Permissions(role user.Role) ([]string, error) {
	perms, err := a.enforcer.GetImplicitPermissionsForUser(SubjectFromRole(role))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		if len(p) >= 3 {
			out = append(out, p[1]+"."+p[2])
		}
	}
	return out, nil
}

func split(p user.Permission) (string, string) {
	obj, act, found := strings.Cut(string(p), ".")
	if !found {
		return obj, "*"
	}
	return obj, act
}
