package services

const adminRole = "admin"

// Actor is the authenticated caller as seen by this module. The role string
// comes from the identity context; only "admin" is meaningful here.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == adminRole
}

// CanAccess is the single ownership decision for shipment read/update/
// status-change/delete/attachment mutation: admins always, owners otherwise.
func CanAccess(actor Actor, ownerID string) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.UserID != "" && actor.UserID == ownerID
}
