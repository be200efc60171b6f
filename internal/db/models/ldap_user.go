package models

import "time"

// LDAPUser is the source-specific record for a user imported from LDAP or
// Active Directory. Attribute values are stored as raw strings since the
// directory reports everything as attribute-value text. The natural key is
// (object_guid, object_sid) scoped to the owning configuration.
type LDAPUser struct {
	// ID is the unique identifier for the record.
	ID uint `gorm:"primaryKey"`

	DN                     string `gorm:"size:300;column:dn"`
	AccountExpires         string `gorm:"size:300"`
	AdminCount             string `gorm:"size:300"`
	BadPasswordTime        string `gorm:"size:300"`
	BadPwdCount            string `gorm:"size:300"`
	CN                     string `gorm:"size:300;column:cn"`
	Description            string `gorm:"size:300"`
	DisplayName            string `gorm:"size:300"`
	DistinguishedName      string `gorm:"size:300"`
	IsCriticalSystemObject string `gorm:"size:300"`
	LastLogoff             string `gorm:"size:300"`
	LastLogon              string `gorm:"size:300"`
	LastLogonTimestamp     string `gorm:"size:300"`
	LockoutTime            string `gorm:"size:300"`
	LogonCount             string `gorm:"size:300"`
	LogonHours             string `gorm:"size:300"`
	Name                   string `gorm:"size:300"`
	ObjectGUID             string `gorm:"size:300;column:object_guid;uniqueIndex:idx_ldap_user_natural"`
	ObjectSID              string `gorm:"size:300;column:object_sid;uniqueIndex:idx_ldap_user_natural"`
	PrimaryGroupID         string `gorm:"size:300;column:primary_group_id"`
	PwdLastSet             string `gorm:"size:300"`
	SAMAccountName         string `gorm:"size:300;column:sam_account_name"`
	SAMAccountType         string `gorm:"size:300;column:sam_account_type"`
	USNChanged             string `gorm:"size:300;column:usn_changed"`
	USNCreated             string `gorm:"size:300;column:usn_created"`
	UserAccountControl     string `gorm:"size:300"`
	WhenChanged            string `gorm:"size:300"`
	WhenCreated            string `gorm:"size:300"`

	// LDAPConfigurationID is the configuration the record was imported under.
	LDAPConfigurationID uint `gorm:"not null;column:ldap_configuration_id;uniqueIndex:idx_ldap_user_natural"`
	// LDAPConfiguration is the associated configuration (loaded via foreign key).
	LDAPConfiguration LDAPConfiguration `gorm:"foreignKey:LDAPConfigurationID;constraint:OnDelete:CASCADE"`
	// IdentityID is the canonical identity this record represents. It stays
	// NULL for entries that carry no displayName or cn to derive a name from.
	IdentityID *uint
	// Identity is the associated identity (loaded via foreign key).
	Identity Identity `gorm:"foreignKey:IdentityID"`
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the record was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the LDAPUser model.
func (LDAPUser) TableName() string {
	return "ldap_users"
}

// fieldsByColumn maps canonical column names to the struct fields holding them.
func (u *LDAPUser) fieldsByColumn() map[string]*string {
	return map[string]*string{
		"dn":                        &u.DN,
		"account_expires":           &u.AccountExpires,
		"admin_count":               &u.AdminCount,
		"bad_password_time":         &u.BadPasswordTime,
		"bad_pwd_count":             &u.BadPwdCount,
		"cn":                        &u.CN,
		"description":               &u.Description,
		"display_name":              &u.DisplayName,
		"distinguished_name":        &u.DistinguishedName,
		"is_critical_system_object": &u.IsCriticalSystemObject,
		"last_logoff":               &u.LastLogoff,
		"last_logon":                &u.LastLogon,
		"last_logon_timestamp":      &u.LastLogonTimestamp,
		"lockout_time":              &u.LockoutTime,
		"logon_count":               &u.LogonCount,
		"logon_hours":               &u.LogonHours,
		"name":                      &u.Name,
		"object_guid":               &u.ObjectGUID,
		"object_sid":                &u.ObjectSID,
		"primary_group_id":          &u.PrimaryGroupID,
		"pwd_last_set":              &u.PwdLastSet,
		"sam_account_name":          &u.SAMAccountName,
		"sam_account_type":          &u.SAMAccountType,
		"usn_changed":               &u.USNChanged,
		"usn_created":               &u.USNCreated,
		"user_account_control":      &u.UserAccountControl,
		"when_changed":              &u.WhenChanged,
		"when_created":              &u.WhenCreated,
	}
}

// Apply sets the fields named by canonical column names. Unknown names are
// ignored so callers can pass the full normalized attribute bag.
func (u *LDAPUser) Apply(attrs map[string]string) {
	fields := u.fieldsByColumn()
	for name, value := range attrs {
		if field, ok := fields[name]; ok {
			*field = value
		}
	}
}
