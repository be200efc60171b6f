package models

import "time"

// LDAPGroup is the source-specific record for a group imported from LDAP or
// Active Directory. Natural key is (object_guid, object_sid) scoped to the
// owning configuration. Each group record optionally links 1:1 to a
// CanonicalGroup whose name tracks the group's cn across imports.
type LDAPGroup struct {
	// ID is the unique identifier for the record.
	ID uint `gorm:"primaryKey"`

	CN                string `gorm:"size:300;column:cn"`
	DistinguishedName string `gorm:"size:300"`
	Name              string `gorm:"size:300"`
	ObjectCategory    string `gorm:"size:300"`
	ObjectGUID        string `gorm:"size:300;column:object_guid;uniqueIndex:idx_ldap_group_natural"`
	ObjectSID         string `gorm:"size:300;column:object_sid;uniqueIndex:idx_ldap_group_natural"`
	SAMAccountName    string `gorm:"size:300;column:sam_account_name"`

	// LDAPConfigurationID is the configuration the record was imported under.
	LDAPConfigurationID uint `gorm:"not null;column:ldap_configuration_id;uniqueIndex:idx_ldap_group_natural"`
	// LDAPConfiguration is the associated configuration (loaded via foreign key).
	LDAPConfiguration LDAPConfiguration `gorm:"foreignKey:LDAPConfigurationID;constraint:OnDelete:CASCADE"`
	// CanonicalGroupID is the linked cross-source group, if established.
	CanonicalGroupID *uint
	// CanonicalGroup is the associated canonical group (loaded via foreign key).
	CanonicalGroup *CanonicalGroup `gorm:"foreignKey:CanonicalGroupID"`
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the record was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the LDAPGroup model.
func (LDAPGroup) TableName() string {
	return "ldap_groups"
}

// fieldsByColumn maps canonical column names to the struct fields holding them.
func (g *LDAPGroup) fieldsByColumn() map[string]*string {
	return map[string]*string{
		"cn":                 &g.CN,
		"distinguished_name": &g.DistinguishedName,
		"name":               &g.Name,
		"object_category":    &g.ObjectCategory,
		"object_guid":        &g.ObjectGUID,
		"object_sid":         &g.ObjectSID,
		"sam_account_name":   &g.SAMAccountName,
	}
}

// Apply sets the fields named by canonical column names. Unknown names are
// ignored so callers can pass the full normalized attribute bag.
func (g *LDAPGroup) Apply(attrs map[string]string) {
	fields := g.fieldsByColumn()
	for name, value := range attrs {
		if field, ok := fields[name]; ok {
			*field = value
		}
	}
}
