package schema

// GoogleUser maps Google Directory user fields to canonical columns.
var GoogleUser = NewMapping(map[string]string{ //nolint:gochecknoglobals
	"first_name":                    "firstName",
	"surname":                       "givenName",
	"is_delegated_admin":            "isDelegatedAdmin",
	"suspended":                     "suspended",
	"google_id":                     "id",
	"deletion_time":                 "deletionTime",
	"suspension_reason":             "suspensionReason",
	"is_admin":                      "isAdmin",
	"etag":                          "etag",
	"last_login_time":               "lastLoginTime",
	"is_mailbox_setup":              "isMailboxSetup",
	"ip_whitelisted":                "ipWhitelisted",
	"password":                      "password",
	"primary_email":                 "primaryEmail",
	"hash_function":                 "hashFunction",
	"creation_time":                 "creationTime",
	"change_password_at_next_login": "changePasswordAtNextLogin",
})

// GoogleGroup maps Google Directory group fields to canonical columns.
var GoogleGroup = NewMapping(map[string]string{ //nolint:gochecknoglobals
	"google_id":            "id",
	"etag":                 "etag",
	"email":                "email",
	"name":                 "name",
	"direct_members_count": "directMembersCount",
	"description":          "description",
	"admin_created":        "adminCreated",
})

// LDAPUser maps Active Directory user attributes to canonical columns.
var LDAPUser = NewMapping(map[string]string{ //nolint:gochecknoglobals
	"distinguished_name":        "distinguishedName",
	"object_guid":               "objectGUID",
	"object_sid":                "objectSid",
	"cn":                        "cn",
	"account_expires":           "accountExpires",
	"admin_count":               "adminCount",
	"bad_password_time":         "badPasswordTime",
	"bad_pwd_count":             "badPwdCount",
	"description":               "description",
	"display_name":              "displayName",
	"is_critical_system_object": "isCriticalSystemObject",
	"last_logoff":               "lastLogoff",
	"last_logon":                "lastLogon",
	"last_logon_timestamp":      "lastLogonTimestamp",
	"lockout_time":              "lockoutTime",
	"logon_count":               "logonCount",
	"logon_hours":               "logonHours",
	"name":                      "name",
	"primary_group_id":          "primaryGroupID",
	"pwd_last_set":              "pwdLastSet",
	"sam_account_name":          "sAMAccountName",
	"sam_account_type":          "sAMAccountType",
	"usn_changed":               "uSNChanged",
	"usn_created":               "uSNCreated",
	"user_account_control":      "userAccountControl",
	"when_changed":              "whenChanged",
	"when_created":              "whenCreated",
})

// LDAPGroup maps Active Directory group attributes to canonical columns.
var LDAPGroup = NewMapping(map[string]string{ //nolint:gochecknoglobals
	"distinguished_name": "distinguishedName",
	"object_guid":        "objectGUID",
	"object_sid":         "objectSid",
	"cn":                 "cn",
	"name":               "name",
	"object_category":    "objectCategory",
	"sam_account_name":   "sAMAccountName",
})
