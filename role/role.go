package role

type Role string

const (
	SuperAdmin  Role = "super_admin"
	Admin       Role = "admin"
	SystemAdmin Role = "system_admin"
	Doctor      Role = "doctor"
)

type Capability string

const (
	CreateAppointment Capability = "appointment:create"
	UpdateAppointment Capability = "appointment:update"
	CancelAppointment Capability = "appointment:cancel"
	ViewAppointment   Capability = "appointment:view"
	ManagePatient     Capability = "patient:manage"
	ViewPatient       Capability = "patient:view"
	ManageBranch      Capability = "branch:manage"
	ViewBranch        Capability = "branch:view"
	ManageRobot       Capability = "robot:manage"
	ViewRobot         Capability = "robot:view"
	ManageCatalog     Capability = "catalog:manage"
	ViewCatalog       Capability = "catalog:view"
	ManageStaff       Capability = "staff:manage"
	ViewStaff         Capability = "staff:view"
	ManageReport      Capability = "report:manage"
	ViewReport        Capability = "report:view"
)

// Config is the role table handed to services and middleware at
// construction. Tests build their own.
type Config struct {
	Privileges map[Role][]Capability
}

func DefaultConfig() Config {
	return Config{
		Privileges: map[Role][]Capability{
			SuperAdmin: {
				ManageCatalog, ViewCatalog, ManageStaff, ViewStaff,
				ManageBranch, ViewBranch, ManageRobot, ViewRobot,
				ViewAppointment, ViewPatient, ViewReport,
			},
			Admin: {
				ManageCatalog, ViewCatalog, ManageStaff, ViewStaff,
				ManageBranch, ViewBranch, ManageRobot, ViewRobot,
				CreateAppointment, UpdateAppointment, CancelAppointment, ViewAppointment,
				ManagePatient, ViewPatient, ManageReport, ViewReport,
			},
			SystemAdmin: {
				ViewCatalog, ViewStaff, ViewBranch, ViewRobot,
				CreateAppointment, UpdateAppointment, CancelAppointment, ViewAppointment,
				ManagePatient, ViewPatient, ViewReport,
			},
			Doctor: {
				ViewCatalog, ViewAppointment, ViewPatient, ManageReport, ViewReport,
			},
		},
	}
}

func (c Config) Valid(r Role) bool {
	_, ok := c.Privileges[r]
	return ok
}

func (c Config) Can(r Role, capability Capability) bool {
	for _, granted := range c.Privileges[r] {
		if granted == capability {
			return true
		}
	}
	return false
}

// CanCreate reports whether creator may create staff of the target role.
// Super admins onboard admins, admins onboard everyone below super admin.
func (c Config) CanCreate(creator, target Role) bool {
	if !c.Can(creator, ManageStaff) || !c.Valid(target) {
		return false
	}
	switch creator {
	case SuperAdmin:
		return target != SuperAdmin
	case Admin:
		return target == SystemAdmin || target == Doctor
	}
	return false
}
