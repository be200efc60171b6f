package models

import "time"

// GoogleGroup is the source-specific record for a group imported from a Google
// Workspace Directory. Natural key is (google_id, google_configuration_id).
// Each group record optionally links 1:1 to a CanonicalGroup whose name tracks
// the group's name field across imports.
type GoogleGroup struct {
	// ID is the unique identifier for the record.
	ID uint `gorm:"primaryKey"`
	// Name is the group's display name.
	Name string `gorm:"size:300"`
	// GoogleID is the directory-native id of the group.
	GoogleID string `gorm:"size:300;not null;uniqueIndex:idx_google_group_natural"`
	// Description is the group description.
	Description string `gorm:"size:1000"`
	// DirectMembersCount is the member count as reported by the directory.
	DirectMembersCount string `gorm:"size:20"`
	// AdminCreated indicates the group was created by an administrator.
	AdminCreated bool
	// Email is the group's email address.
	Email string `gorm:"size:300"`
	// Etag is the directory entity tag for the record.
	Etag string `gorm:"size:300"`
	// GoogleConfigurationID is the configuration the record was imported under.
	GoogleConfigurationID uint `gorm:"not null;uniqueIndex:idx_google_group_natural"`
	// GoogleConfiguration is the associated configuration (loaded via foreign key).
	GoogleConfiguration GoogleConfiguration `gorm:"foreignKey:GoogleConfigurationID;constraint:OnDelete:CASCADE"`
	// IdentityID is the canonical identity this record represents.
	IdentityID uint
	// Identity is the associated identity (loaded via foreign key).
	Identity Identity `gorm:"foreignKey:IdentityID"`
	// CanonicalGroupID is the linked cross-source group, if established.
	CanonicalGroupID *uint
	// CanonicalGroup is the associated canonical group (loaded via foreign key).
	CanonicalGroup *CanonicalGroup `gorm:"foreignKey:CanonicalGroupID"`
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the record was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the GoogleGroup model.
func (GoogleGroup) TableName() string {
	return "google_groups"
}

// Apply sets the fields named by canonical attribute names. Unknown names are
// ignored so callers can pass the full normalized attribute bag.
func (g *GoogleGroup) Apply(attrs map[string]any) {
	for name, value := range attrs {
		switch name {
		case "name":
			g.Name = attrString(value)
		case "google_id":
			g.GoogleID = attrString(value)
		case "description":
			g.Description = attrString(value)
		case "direct_members_count":
			g.DirectMembersCount = attrString(value)
		case "admin_created":
			g.AdminCreated = attrBool(value)
		case "email":
			g.Email = attrString(value)
		case "etag":
			g.Etag = attrString(value)
		}
	}
}
