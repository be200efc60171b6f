package models

import "time"

// LDAPMembership represents the many-to-many relationship between LDAP users
// and LDAP groups at the source level. Adding an existing edge is a no-op; the
// membership resolver mirrors each edge at the canonical level.
type LDAPMembership struct {
	// LDAPUserID is the ID of the user in this membership.
	LDAPUserID uint `gorm:"primaryKey;column:ldap_user_id"`
	// LDAPGroupID is the ID of the group in this membership.
	LDAPGroupID uint `gorm:"primaryKey;column:ldap_group_id"`
	// LDAPUser is the associated user (loaded via foreign key).
	LDAPUser LDAPUser `gorm:"foreignKey:LDAPUserID;constraint:OnDelete:CASCADE"`
	// LDAPGroup is the associated group (loaded via foreign key).
	LDAPGroup LDAPGroup `gorm:"foreignKey:LDAPGroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the membership was added (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the LDAPMembership model.
func (LDAPMembership) TableName() string {
	return "ldap_memberships"
}
