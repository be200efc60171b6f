package models

import "time"

// IdentifierKind classifies an identifier value.
type IdentifierKind string

const (
	// IdentifierKindEmail is a syntactically valid email address.
	IdentifierKindEmail IdentifierKind = "email"
	// IdentifierKindUsername is a login or account name (e.g. sAMAccountName).
	IdentifierKindUsername IdentifierKind = "username"
	// IdentifierKindName is a plain name or alias that is not an email address.
	IdentifierKindName IdentifierKind = "name"
)

// Identifier is a single value (email address, username, alias) that points at
// an identity. Several identifiers may point at the same identity; the
// (value, kind, identity) combination is unique so repeated imports are no-ops.
type Identifier struct {
	// ID is the unique identifier for the row.
	ID uint `gorm:"primaryKey"`
	// Value is the identifier value itself.
	Value string `gorm:"size:300;not null;uniqueIndex:idx_identifier_value_kind_identity"`
	// Kind classifies the value (email, username, or name).
	Kind IdentifierKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_identifier_value_kind_identity"`
	// IdentityID is the owning identity.
	IdentityID uint `gorm:"not null;uniqueIndex:idx_identifier_value_kind_identity"`
	// Identity is the associated identity (loaded via foreign key).
	Identity Identity `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the identifier was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Identifier model.
func (Identifier) TableName() string {
	return "identifiers"
}
