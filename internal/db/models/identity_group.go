package models

import "time"

// IdentityGroup represents the many-to-many relationship between identities and
// canonical groups. It mirrors the source-level membership edges at the
// canonical level; the membership resolver maintains both sides together.
type IdentityGroup struct {
	// IdentityID is the ID of the identity in this membership.
	IdentityID uint `gorm:"primaryKey;column:identity_id"`
	// CanonicalGroupID is the ID of the canonical group in this membership.
	CanonicalGroupID uint `gorm:"primaryKey;column:canonical_group_id"`
	// Identity is the associated identity (loaded via foreign key).
	Identity Identity `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE"`
	// CanonicalGroup is the associated group (loaded via foreign key).
	CanonicalGroup CanonicalGroup `gorm:"foreignKey:CanonicalGroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the membership was added (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the IdentityGroup model.
func (IdentityGroup) TableName() string {
	return "identity_groups"
}
