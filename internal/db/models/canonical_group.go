package models

import "time"

// GroupType represents the directory source a canonical group was imported from.
type GroupType string

const (
	// GroupTypeGoogle indicates the group was imported from Google Workspace Directory.
	GroupTypeGoogle GroupType = "google"
	// GroupTypeLDAP indicates the group was imported from an LDAP or Active Directory server.
	GroupTypeLDAP GroupType = "ldap"
)

// CanonicalGroup is the cross-source grouping entity. Each source-specific
// group record optionally links to exactly one canonical group, and canonical
// membership edges (IdentityGroup) attach identities to it. The name tracks
// the source record's name field on every import.
type CanonicalGroup struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the group.
	Name string `gorm:"size:300;not null"`
	// GroupType identifies which source created the group.
	GroupType GroupType `gorm:"type:varchar(20);not null"`
	// Description provides a human-readable explanation of the group's origin.
	Description string `gorm:"size:300"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the CanonicalGroup model.
func (CanonicalGroup) TableName() string {
	return "canonical_groups"
}
