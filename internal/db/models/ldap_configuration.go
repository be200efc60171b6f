package models

import "time"

// LDAPConfiguration holds the connection parameters for an LDAP or Active
// Directory source: server address, bind credentials, and the search base to
// dump. TLS options follow the usual LDAP deployment variants (LDAPS on 636,
// or StartTLS upgrade on 389).
type LDAPConfiguration struct {
	// ID is the unique identifier for the configuration.
	ID uint `gorm:"primaryKey"`
	// Server is the LDAP server hostname or IP address.
	Server string `gorm:"size:100;not null;uniqueIndex:idx_ldap_server_bind" validate:"required"`
	// Port is the LDAP server port (typically 389 for LDAP, 636 for LDAPS).
	Port int `gorm:"not null;default:389"`
	// BindDN is the distinguished name to bind with for performing searches.
	BindDN string `gorm:"size:300;column:bind_dn;uniqueIndex:idx_ldap_server_bind" validate:"required"`
	// BindPassword is the password for the bind DN.
	BindPassword string `gorm:"size:300" validate:"required"`
	// BaseDN is the base distinguished name searches are rooted at.
	BaseDN string `gorm:"size:300;column:base_dn" validate:"required"`
	// UseSSL enables LDAPS (LDAP over SSL/TLS) on port 636.
	UseSSL bool `gorm:"column:use_ssl"`
	// UseTLS enables StartTLS to upgrade an LDAP connection to TLS.
	UseTLS bool `gorm:"column:use_tls"`
	// SkipVerify skips TLS certificate verification (insecure, for testing only).
	SkipVerify bool
	// Timeout is the connection timeout in seconds.
	Timeout int
	// CreatedAt is the timestamp when the configuration was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the configuration was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the LDAPConfiguration model.
func (LDAPConfiguration) TableName() string {
	return "ldap_configurations"
}
