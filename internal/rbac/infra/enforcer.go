package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// ModelText is role based access with role inheritance: g(child, parent).
const ModelText = `[request_definition]
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

// NewEnforcer builds an enforcer from modelPath, or from ModelText when the
// path is empty.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	if modelPath != "" {
		return casbin.NewEnforcer(modelPath)
	}
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
