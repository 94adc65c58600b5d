package services

import "shipline/contexts/identity-access/account-service/domain/entities"

// IsAdmin gates the user-management surface. There is no ownership concept
// for user records: non-admins read their own account through the profile
// path, never by id.
func IsAdmin(role entities.Role) bool {
	return role == entities.RoleAdmin
}
