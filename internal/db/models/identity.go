package models

import "time"

// IdentityKind represents what kind of real-world subject an identity describes.
type IdentityKind string

const (
	// IdentityKindPerson indicates the identity describes a person.
	IdentityKindPerson IdentityKind = "person"
	// IdentityKindGroup indicates the identity describes a group.
	IdentityKindGroup IdentityKind = "group"
)

// Identity is the cross-source canonical representation of a person or group.
// One identity exists per real-world subject regardless of how many directory
// sources report it. Source records link to it via their IdentityID foreign key,
// and imports match on (name, kind) so a re-import updates rather than duplicates.
type Identity struct {
	// ID is the unique identifier for the identity.
	ID uint `gorm:"primaryKey"`
	// Kind indicates whether this identity describes a person or a group.
	Kind IdentityKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_identity_name_kind"`
	// Name is the display name used to match records across sources.
	Name string `gorm:"size:300;not null;uniqueIndex:idx_identity_name_kind"`
	// Description is a free-form note recording where the identity came from.
	Description string `gorm:"size:300"`
	// SourceTag records which directory source first created this identity.
	SourceTag string `gorm:"size:50"`
	// CreatedAt is the timestamp when the identity was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the identity was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Identity model.
func (Identity) TableName() string {
	return "identities"
}
