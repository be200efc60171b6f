package models

import "time"

// GoogleUser is the source-specific record for a user imported from a Google
// Workspace Directory. The natural key is (google_id, google_configuration_id):
// unique per configuration so re-imports update in place while separate
// configurations keep their own records.
type GoogleUser struct {
	// ID is the unique identifier for the record.
	ID uint `gorm:"primaryKey"`
	// FirstName is the user's given name.
	FirstName string `gorm:"size:300"`
	// Surname is the user's family name.
	Surname string `gorm:"size:300"`
	// IsDelegatedAdmin indicates delegated admin privileges.
	IsDelegatedAdmin bool
	// Suspended indicates the account is suspended.
	Suspended bool
	// GoogleID is the directory-native id of the user.
	GoogleID string `gorm:"size:300;not null;uniqueIndex:idx_google_user_natural"`
	// DeletionTime is the raw deletion timestamp reported by the directory.
	DeletionTime string `gorm:"size:300"`
	// SuspensionReason is the reason the account was suspended, if any.
	SuspensionReason string `gorm:"size:300"`
	// IsAdmin indicates super admin privileges.
	IsAdmin bool
	// Etag is the directory entity tag for the record.
	Etag string `gorm:"size:300"`
	// LastLoginTime is the raw last login timestamp reported by the directory.
	LastLoginTime string `gorm:"size:300"`
	// IsMailboxSetup indicates the user's mailbox has been set up.
	IsMailboxSetup bool
	// Password is the password field as reported (normally empty).
	Password string `gorm:"size:300"`
	// PrimaryEmail is the user's primary email address.
	PrimaryEmail string `gorm:"size:300"`
	// IPWhitelisted indicates the user is whitelisted by IP.
	IPWhitelisted bool `gorm:"column:ip_whitelisted"`
	// HashFunction is the password hash function as reported.
	HashFunction string `gorm:"size:300"`
	// CreationTime is the raw creation timestamp reported by the directory.
	CreationTime string `gorm:"size:300"`
	// ChangePasswordAtNextLogin indicates a forced password change.
	ChangePasswordAtNextLogin bool
	// GoogleConfigurationID is the configuration the record was imported under.
	GoogleConfigurationID uint `gorm:"not null;uniqueIndex:idx_google_user_natural"`
	// GoogleConfiguration is the associated configuration (loaded via foreign key).
	GoogleConfiguration GoogleConfiguration `gorm:"foreignKey:GoogleConfigurationID;constraint:OnDelete:CASCADE"`
	// IdentityID is the canonical identity this record represents.
	IdentityID uint
	// Identity is the associated identity (loaded via foreign key).
	Identity Identity `gorm:"foreignKey:IdentityID"`
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the record was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the GoogleUser model.
func (GoogleUser) TableName() string {
	return "google_users"
}

// Apply sets the fields named by canonical attribute names. Unknown names are
// ignored so callers can pass the full normalized attribute bag.
func (u *GoogleUser) Apply(attrs map[string]any) {
	for name, value := range attrs {
		switch name {
		case "first_name":
			u.FirstName = attrString(value)
		case "surname":
			u.Surname = attrString(value)
		case "is_delegated_admin":
			u.IsDelegatedAdmin = attrBool(value)
		case "suspended":
			u.Suspended = attrBool(value)
		case "google_id":
			u.GoogleID = attrString(value)
		case "deletion_time":
			u.DeletionTime = attrString(value)
		case "suspension_reason":
			u.SuspensionReason = attrString(value)
		case "is_admin":
			u.IsAdmin = attrBool(value)
		case "etag":
			u.Etag = attrString(value)
		case "last_login_time":
			u.LastLoginTime = attrString(value)
		case "is_mailbox_setup":
			u.IsMailboxSetup = attrBool(value)
		case "password":
			u.Password = attrString(value)
		case "primary_email":
			u.PrimaryEmail = attrString(value)
		case "ip_whitelisted":
			u.IPWhitelisted = attrBool(value)
		case "hash_function":
			u.HashFunction = attrString(value)
		case "creation_time":
			u.CreationTime = attrString(value)
		case "change_password_at_next_login":
			u.ChangePasswordAtNextLogin = attrBool(value)
		}
	}
}

// DisplayName returns the name used for the canonical identity.
func (u *GoogleUser) DisplayName() string {
	if u.FirstName == "" && u.Surname == "" {
		return u.PrimaryEmail
	}

	return u.FirstName + " " + u.Surname
}
