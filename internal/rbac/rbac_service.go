package rbac

import (
	"sort"
	"sync"

	"go-paye/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) (RolePermissionsResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the policy once; call LoadPolicy again to refresh it.
func NewService(repo Repository, enforcer *casbin.Enforcer) (Service, error) {
	s := &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
	}
	if err := s.LoadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	inheritance, err := s.repo.GetRoleInheritance()
	if err != nil {
		return err
	}
	for _, row := range inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(row.Role, row.Parent); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded",
		zap.Int("role_inheritance", len(inheritance)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("subject", req.Subject),
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("subject", req.Subject),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) (RolePermissionsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return RolePermissionsResponse{}, err
	}

	resp := RolePermissionsResponse{Role: role, Permissions: make([]PermissionResponse, 0, len(perms))}
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		resp.Permissions = append(resp.Permissions, PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(resp.Permissions, func(i, j int) bool {
		a, b := resp.Permissions[i], resp.Permissions[j]
		if a.Resource != b.Resource {
			return a.Resource < b.Resource
		}
		return a.Action < b.Action
	})
	return resp, nil
}
