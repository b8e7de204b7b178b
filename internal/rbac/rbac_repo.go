package rbac

type Repository interface {
	GetRoleInheritance() ([]RoleInheritanceRow, error)
	GetRolePermissions() ([]RolePermissionRow, error)
}

type RoleInheritanceRow struct {
	Role   string
	Parent string
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

const (
	RoleAdmin          = "admin"
	RolePayrollOfficer = "payroll_officer"
	RoleEmployee       = "employee"
)

// DefaultPolicy: employees use the calculator, payroll officers also run
// uploads and payslips, admins inherit everything.
var DefaultPolicy = StaticPolicy{
	Inheritance: []RoleInheritanceRow{
		{Role: RolePayrollOfficer, Parent: RoleEmployee},
		{Role: RoleAdmin, Parent: RolePayrollOfficer},
	},
	Permissions: []RolePermissionRow{
		{Role: RoleEmployee, Resource: "payroll", Action: "read"},
		{Role: RoleEmployee, Resource: "payroll", Action: "calculate"},
		{Role: RolePayrollOfficer, Resource: "payroll", Action: "import"},
		{Role: RolePayrollOfficer, Resource: "payslip", Action: "generate"},
	},
}

type StaticPolicy struct {
	Inheritance []RoleInheritanceRow
	Permissions []RolePermissionRow
}

type staticRepository struct {
	policy StaticPolicy
}

// NewStaticRepository serves a fixed policy; there is no role store.
func NewStaticRepository(policy StaticPolicy) Repository {
	return &staticRepository{policy: policy}
}

func (r *staticRepository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	out := make([]RoleInheritanceRow, len(r.policy.Inheritance))
	copy(out, r.policy.Inheritance)
	return out, nil
}

func (r *staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	out := make([]RolePermissionRow, len(r.policy.Permissions))
	copy(out, r.policy.Permissions)
	return out, nil
}
