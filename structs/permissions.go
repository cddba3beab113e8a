package structs

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
)

// Permission is a capability an admin account can hold.
type Permission string

const (
	PermissionOrders       Permission = "orders"
	PermissionProducts     Permission = "products"
	PermissionCategories   Permission = "categories"
	PermissionPayments     Permission = "payments"
	PermissionDiscounts    Permission = "discounts"
	PermissionFlashSales   Permission = "flashsales"
	PermissionTestimonials Permission = "testimonials"
	PermissionArticles     Permission = "articles"
	PermissionSettings     Permission = "settings"
	PermissionAdminUsers   Permission = "admin_users"
	PermissionAll          Permission = "*"
)

var AllPermissions = []Permission{
	PermissionOrders,
	PermissionProducts,
	PermissionCategories,
	PermissionPayments,
	PermissionDiscounts,
	PermissionFlashSales,
	PermissionTestimonials,
	PermissionArticles,
	PermissionSettings,
	PermissionAdminUsers,
}

func (p Permission) Valid() bool {
	if p == PermissionAll {
		return true
	}
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// HasPermission is the single capability check used for every admin route.
func HasPermission(role Role, granted []Permission, required Permission) bool {
	if role == RoleSuperAdmin {
		return true
	}
	for _, p := range granted {
		if p == PermissionAll || p == required {
			return true
		}
	}
	return false
}

type AdminStatus string

const (
	AdminStatusActive    AdminStatus = "active"
	AdminStatusSuspended AdminStatus = "suspended"
	AdminStatusDeleted   AdminStatus = "deleted"
)
