package models

import "time"

// GoogleMembership represents the many-to-many relationship between Google
// users and Google groups at the source level. Adding an existing edge is a
// no-op; the membership resolver mirrors each edge at the canonical level.
type GoogleMembership struct {
	// GoogleUserID is the ID of the user in this membership.
	GoogleUserID uint `gorm:"primaryKey;column:google_user_id"`
	// GoogleGroupID is the ID of the group in this membership.
	GoogleGroupID uint `gorm:"primaryKey;column:google_group_id"`
	// GoogleUser is the associated user (loaded via foreign key).
	GoogleUser GoogleUser `gorm:"foreignKey:GoogleUserID;constraint:OnDelete:CASCADE"`
	// GoogleGroup is the associated group (loaded via foreign key).
	GoogleGroup GoogleGroup `gorm:"foreignKey:GoogleGroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the membership was added (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the GoogleMembership model.
func (GoogleMembership) TableName() string {
	return "google_memberships"
}
