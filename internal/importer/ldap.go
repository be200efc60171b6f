package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/directory/ldapsearch"
	"github.com/dirgraph/dirgraph/internal/schema"
	"github.com/dirgraph/dirgraph/internal/timeconv"
)

const (
	ldapUserFilter  = "(objectclass=user)"
	ldapGroupFilter = "(objectclass=group)"
)

// ldapUserSideAttributes are requested alongside the mapped user attributes
// and consumed as side channels instead of columns.
var ldapUserSideAttributes = []string{"memberOf", "proxyAddresses"} //nolint:gochecknoglobals

// ldapDateAttributes are the attributes whose values carry FILETIME ticks or
// generalized-time strings and get normalized to RFC 3339 on import.
var ldapDateAttributes = map[string]bool{ //nolint:gochecknoglobals
	"accountExpires":     true,
	"badPasswordTime":    true,
	"lastLogoff":         true,
	"lastLogon":          true,
	"lastLogonTimestamp": true,
	"lockoutTime":        true,
	"pwdLastSet":         true,
	"uSNChanged":         true,
	"uSNCreated":         true,
	"whenChanged":        true,
	"whenCreated":        true,
}

// ldapUserAttributes returns the attribute list requested for the user search.
func ldapUserAttributes() []string {
	return append(schema.LDAPUser.Externals(), ldapUserSideAttributes...)
}

// ldapExtras carries the side-channel attributes peeled off an entry before
// column mapping.
type ldapExtras struct {
	memberOf []string
	emails   []string
}

// cleanhex rewrites a value that is not valid text as escaped hex bytes so it
// can still be stored and compared across imports.
func cleanhex(s string) string {
	var b strings.Builder

	for _, c := range []byte(s) {
		fmt.Fprintf(&b, `\%02X`, c)
	}

	return b.String()
}

// collapseValues reduces an attribute's value list to the single stored
// string: the last value wins, non-text values contribute their encoded
// token, and anything still not valid UTF-8 is hex-escaped.
func collapseValues(values []ldapsearch.AttributeValue) string {
	out := ""

	for _, v := range values {
		if v.Encoded != "" {
			out = v.Encoded
			continue
		}

		out = v.Text
	}

	if !utf8.ValidString(out) {
		return cleanhex(out)
	}

	return out
}

// normalizeLDAPEntry maps a directory entry onto canonical column names.
// memberOf and proxyAddresses come back as side channels, date-bearing
// attributes are normalized when they parse, and unmapped attributes drop.
// proxyAddresses values carry an "SMTP:" style prefix that is stripped.
func normalizeLDAPEntry(entry ldapsearch.Entry, mapping *schema.Mapping) (map[string]string, ldapExtras) {
	attrs := map[string]string{"dn": entry.DN}

	var extras ldapExtras

	for name, values := range entry.Attributes {
		if len(values) == 0 {
			continue
		}

		switch name {
		case "memberOf":
			for _, v := range values {
				if v.Text != "" {
					extras.memberOf = append(extras.memberOf, v.Text)
				}
			}
		case "proxyAddresses":
			for _, v := range values {
				if len(v.Text) > 5 {
					extras.emails = append(extras.emails, v.Text[5:])
				}
			}
		default:
			canonical, ok := mapping.ToCanonical(name)
			if !ok {
				continue
			}

			value := collapseValues(values)

			if ldapDateAttributes[name] {
				if normalized, ok := timeconv.Normalize(value); ok && normalized != "" {
					value = normalized
				}
			}

			attrs[canonical] = value
		}
	}

	return attrs, extras
}

// ldapNaturalKey picks the upsert key for an entry, preferring the attributes
// least likely to ever change.
func ldapNaturalKey(attrs map[string]string) (string, string, bool) {
	for _, column := range []string{"object_guid", "object_sid", "distinguished_name"} {
		if value := attrs[column]; value != "" {
			return column, value, true
		}
	}

	return "", "", false
}

// importLDAPGroups reconciles a batch of group entries for one configuration.
// Each stored group carries a canonical group whose name tracks the entry's
// cn across imports.
func (r *Runner) importLDAPGroups(cfg *models.LDAPConfiguration, resp *ldapsearch.Response, stats *Stats) error {
	for _, entry := range resp.Entries {
		attrs, _ := normalizeLDAPEntry(entry, schema.LDAPGroup)

		column, value, ok := ldapNaturalKey(attrs)
		if !ok {
			stats.SkippedIncomplete++

			log.Warn().Str("source", "ldap").Str("dn", entry.DN).
				Msg("skipping group entry without a natural key")

			continue
		}

		var group models.LDAPGroup

		err := r.db.Where(map[string]any{column: value, "ldap_configuration_id": cfg.ID}).
			First(&group).Error

		created := false

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			group = models.LDAPGroup{LDAPConfigurationID: cfg.ID}
			created = true
		case err != nil:
			return errors.Wrap(err, "failed to look up ldap group")
		}

		group.Apply(attrs)

		canonical, err := r.ensureCanonicalGroup(group.CanonicalGroupID, group.CN, models.GroupTypeLDAP, descriptionLDAP)
		if err != nil {
			return err
		}

		group.CanonicalGroupID = &canonical.ID

		if created {
			if errCreate := r.db.Create(&group).Error; errCreate != nil {
				return errors.Wrap(errCreate, "failed to create ldap group")
			}

			stats.GroupsCreated++
		} else {
			if errSave := r.db.Save(&group).Error; errSave != nil {
				return errors.Wrap(errSave, "failed to update ldap group")
			}

			stats.GroupsUpdated++
		}
	}

	return nil
}

// importLDAPUsers reconciles a batch of user entries for one configuration.
// Groups must already be imported: membership edges are resolved from each
// entry's memberOf list against the stored groups, and references that do not
// resolve are skipped and counted.
func (r *Runner) importLDAPUsers(cfg *models.LDAPConfiguration, resp *ldapsearch.Response, stats *Stats) error {
	for _, entry := range resp.Entries {
		attrs, extras := normalizeLDAPEntry(entry, schema.LDAPUser)

		column, value, ok := ldapNaturalKey(attrs)
		if !ok {
			stats.SkippedIncomplete++

			log.Warn().Str("source", "ldap").Str("dn", entry.DN).
				Msg("skipping user entry without a natural key")

			continue
		}

		// The identity is resolved up front so the insert below can carry its
		// foreign key. Entries with no name to derive it from keep a NULL link.
		name := attrs["display_name"]
		if name == "" {
			name = attrs["cn"]
		}

		var identity *models.Identity

		if name != "" {
			var err error

			identity, err = r.ensureIdentity(models.IdentityKindPerson, name, "", "ldap")
			if err != nil {
				return err
			}
		}

		var user models.LDAPUser

		err := r.db.Where(map[string]any{column: value, "ldap_configuration_id": cfg.ID}).
			First(&user).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.LDAPUser{LDAPConfigurationID: cfg.ID}
			user.Apply(attrs)

			if identity != nil {
				user.IdentityID = &identity.ID
			}

			if errCreate := r.db.Create(&user).Error; errCreate != nil {
				return errors.Wrap(errCreate, "failed to create ldap user")
			}

			stats.UsersCreated++
		case err != nil:
			return errors.Wrap(err, "failed to look up ldap user")
		default:
			user.Apply(attrs)

			if identity != nil {
				user.IdentityID = &identity.ID
			}

			if errSave := r.db.Save(&user).Error; errSave != nil {
				return errors.Wrap(errSave, "failed to update ldap user")
			}

			stats.UsersUpdated++
		}

		if identity != nil {
			if err := r.ensureIdentifier(user.SAMAccountName, models.IdentifierKindUsername, identity.ID, stats); err != nil {
				return err
			}

			for _, email := range extras.emails {
				if err := r.ensureIdentifier(email, models.IdentifierKindEmail, identity.ID, stats); err != nil {
					return err
				}
			}
		}

		if err := r.resolveLDAPMemberships(cfg, &user, extras.memberOf, stats); err != nil {
			return err
		}
	}

	return nil
}

// resolveLDAPMemberships attaches a user to every stored group its memberOf
// list names.
func (r *Runner) resolveLDAPMemberships(cfg *models.LDAPConfiguration, user *models.LDAPUser, memberOf []string, stats *Stats) error {
	for _, dn := range memberOf {
		var group models.LDAPGroup

		err := r.db.Where("distinguished_name = ? AND ldap_configuration_id = ?", dn, cfg.ID).
			First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats.SkippedDangling++

			log.Warn().Str("source", "ldap").Str("member_of", dn).
				Msg("membership references unknown group")

			continue
		}

		if err != nil {
			return errors.Wrap(err, "failed to look up ldap group")
		}

		added, err := r.attachLDAPMembership(user, &group, stats)
		if err != nil {
			return err
		}

		if added {
			stats.EdgesAdded++
		}
	}

	return nil
}

// attachLDAPMembership adds the source edge and its canonical mirror in one
// transaction. The source edge is written even when the user has no identity
// or the group no canonical group; the un-mirrored canonical edge is then
// counted as dangling. It reports whether a new edge was written.
func (r *Runner) attachLDAPMembership(user *models.LDAPUser, group *models.LDAPGroup, stats *Stats) (bool, error) {
	var edge models.LDAPMembership

	err := r.db.Where("ldap_user_id = ? AND ldap_group_id = ?", user.ID, group.ID).
		First(&edge).Error
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, errors.Wrap(err, "failed to look up ldap membership")
	}

	mirrored := group.CanonicalGroupID != nil && user.IdentityID != nil

	errTx := r.db.Transaction(func(tx *gorm.DB) error {
		edge = models.LDAPMembership{LDAPUserID: user.ID, LDAPGroupID: group.ID}

		if errCreate := tx.Create(&edge).Error; errCreate != nil {
			return errors.Wrap(errCreate, "failed to create ldap membership")
		}

		if !mirrored {
			return nil
		}

		return mirrorCanonicalEdge(tx, *user.IdentityID, *group.CanonicalGroupID)
	})
	if errTx != nil {
		return false, errors.Wrap(errTx, "membership transaction failed")
	}

	if !mirrored {
		stats.SkippedDangling++

		log.Warn().Str("source", "ldap").Str("dn", user.DN).Str("group", group.CN).
			Msg("membership stored without a canonical mirror")
	}

	return true, nil
}
