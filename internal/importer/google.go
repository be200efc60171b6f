package importer

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/directory/googledir"
	"github.com/dirgraph/dirgraph/internal/schema"
)

// googleExtras carries the list-valued user fields that are peeled off a raw
// record before column mapping and stored as identifiers instead.
type googleExtras struct {
	emails  []string
	aliases []string
}

// stringValue coerces a loosely-typed JSON value to a string.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// stringList coerces a loosely-typed JSON array to its string elements.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))

	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// addressList pulls the address field out of a list of email objects.
func addressList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))

	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			if address := stringValue(obj["address"]); address != "" {
				out = append(out, address)
			}
		}
	}

	return out
}

// normalizeGoogleUser maps a raw user record onto canonical column names.
// The nested name object is flattened into first_name and surname, and the
// email and alias lists come back as side channels. Unmapped fields drop.
func normalizeGoogleUser(record map[string]any) (map[string]any, googleExtras) {
	attrs := make(map[string]any, len(record))

	var extras googleExtras

	for field, value := range record {
		switch field {
		case "name":
			if nested, ok := value.(map[string]any); ok {
				attrs["first_name"] = stringValue(nested["givenName"])
				attrs["surname"] = stringValue(nested["familyName"])
			}
		case "emails":
			extras.emails = addressList(value)
		case "aliases":
			extras.aliases = stringList(value)
		default:
			if canonical, ok := schema.GoogleUser.ToCanonical(field); ok {
				attrs[canonical] = value
			}
		}
	}

	return attrs, extras
}

// normalizeGoogleGroup maps a raw group record onto canonical column names
// and returns the alias list separately.
func normalizeGoogleGroup(record map[string]any) (map[string]any, []string) {
	attrs := make(map[string]any, len(record))

	var aliases []string

	for field, value := range record {
		if field == "aliases" {
			aliases = stringList(value)
			continue
		}

		if canonical, ok := schema.GoogleGroup.ToCanonical(field); ok {
			attrs[canonical] = value
		}
	}

	return attrs, aliases
}

// importGoogleUsers reconciles a batch of raw user records against the stored
// records for one configuration. Each record gets an identity keyed by its
// directory-native id, its emails and aliases as identifiers, and an upsert
// of the source record on (google_id, configuration).
func (r *Runner) importGoogleUsers(cfg *models.GoogleConfiguration, users []map[string]any, stats *Stats) error {
	for _, record := range users {
		attrs, extras := normalizeGoogleUser(record)

		googleID := stringValue(record["id"])
		if googleID == "" {
			stats.SkippedIncomplete++

			log.Warn().Str("source", "google").Msg("skipping user record without id")

			continue
		}

		identity, err := r.ensureIdentity(models.IdentityKindPerson, googleID, descriptionGoogle, "google")
		if err != nil {
			return err
		}

		for _, email := range extras.emails {
			if err := r.ensureIdentifier(email, models.IdentifierKindEmail, identity.ID, stats); err != nil {
				return err
			}
		}

		for _, alias := range extras.aliases {
			if err := r.ensureAlias(alias, identity.ID, stats); err != nil {
				return err
			}
		}

		var user models.GoogleUser

		err = r.db.Where("google_id = ? AND google_configuration_id = ?", googleID, cfg.ID).
			First(&user).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.GoogleUser{GoogleConfigurationID: cfg.ID, IdentityID: identity.ID}
			user.Apply(attrs)

			if errCreate := r.db.Create(&user).Error; errCreate != nil {
				return errors.Wrap(errCreate, "failed to create google user")
			}

			stats.UsersCreated++
		case err != nil:
			return errors.Wrap(err, "failed to look up google user")
		default:
			user.Apply(attrs)
			user.IdentityID = identity.ID

			if errSave := r.db.Save(&user).Error; errSave != nil {
				return errors.Wrap(errSave, "failed to update google user")
			}

			stats.UsersUpdated++
		}
	}

	return nil
}

// importGoogleGroups reconciles a batch of raw group records. A record needs
// both an id and a name to take part; the group identity is resolved fresh
// for each record before its aliases are stored against it.
func (r *Runner) importGoogleGroups(cfg *models.GoogleConfiguration, groups []map[string]any, stats *Stats) error {
	for _, record := range groups {
		attrs, aliases := normalizeGoogleGroup(record)

		googleID := stringValue(record["id"])
		name := stringValue(record["name"])

		if googleID == "" || name == "" {
			stats.SkippedIncomplete++

			log.Warn().Str("source", "google").Msg("skipping group record without id or name")

			continue
		}

		identity, err := r.ensureIdentity(models.IdentityKindGroup, googleID, descriptionGoogle, "google")
		if err != nil {
			return err
		}

		var group models.GoogleGroup

		err = r.db.Where("google_id = ? AND google_configuration_id = ?", googleID, cfg.ID).
			First(&group).Error

		created := false

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			group = models.GoogleGroup{GoogleConfigurationID: cfg.ID, IdentityID: identity.ID}
			created = true
		case err != nil:
			return errors.Wrap(err, "failed to look up google group")
		}

		group.Apply(attrs)
		group.IdentityID = identity.ID

		canonical, err := r.ensureCanonicalGroup(group.CanonicalGroupID, name, models.GroupTypeGoogle, descriptionGoogle)
		if err != nil {
			return err
		}

		group.CanonicalGroupID = &canonical.ID

		if created {
			if errCreate := r.db.Create(&group).Error; errCreate != nil {
				return errors.Wrap(errCreate, "failed to create google group")
			}

			stats.GroupsCreated++
		} else {
			if errSave := r.db.Save(&group).Error; errSave != nil {
				return errors.Wrap(errSave, "failed to update google group")
			}

			stats.GroupsUpdated++
		}

		for _, alias := range aliases {
			if err := r.ensureAlias(alias, identity.ID, stats); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveGoogleMemberships runs the second pass over the per-group member
// lists. References to groups or users absent from the store are skipped and
// counted; each new edge is written at the source and canonical levels in a
// single transaction.
func (r *Runner) resolveGoogleMemberships(cfg *models.GoogleConfiguration, members map[string][]map[string]any, stats *Stats) error {
	for groupID, groupMembers := range members {
		var group models.GoogleGroup

		err := r.db.Where("google_id = ? AND google_configuration_id = ?", groupID, cfg.ID).
			First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats.SkippedDangling += len(groupMembers)

			log.Warn().Str("source", "google").Str("group_id", groupID).
				Msg("membership list references unknown group")

			continue
		}

		if err != nil {
			return errors.Wrap(err, "failed to look up google group")
		}

		if group.CanonicalGroupID == nil {
			stats.SkippedDangling += len(groupMembers)
			continue
		}

		for _, member := range groupMembers {
			memberID := stringValue(member["id"])
			if memberID == "" {
				stats.SkippedDangling++
				continue
			}

			var user models.GoogleUser

			err := r.db.Where("google_id = ? AND google_configuration_id = ?", memberID, cfg.ID).
				First(&user).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				stats.SkippedDangling++

				log.Warn().Str("source", "google").Str("member_id", memberID).
					Msg("membership references unknown user")

				continue
			}

			if err != nil {
				return errors.Wrap(err, "failed to look up google user")
			}

			added, err := r.attachGoogleMembership(&user, &group)
			if err != nil {
				return err
			}

			if added {
				stats.EdgesAdded++
			}
		}
	}

	return nil
}

// attachGoogleMembership adds the source edge and its canonical mirror in one
// transaction. It reports whether a new edge was written.
func (r *Runner) attachGoogleMembership(user *models.GoogleUser, group *models.GoogleGroup) (bool, error) {
	var edge models.GoogleMembership

	err := r.db.Where("google_user_id = ? AND google_group_id = ?", user.ID, group.ID).
		First(&edge).Error
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, errors.Wrap(err, "failed to look up google membership")
	}

	errTx := r.db.Transaction(func(tx *gorm.DB) error {
		edge = models.GoogleMembership{GoogleUserID: user.ID, GoogleGroupID: group.ID}

		if errCreate := tx.Create(&edge).Error; errCreate != nil {
			return errors.Wrap(errCreate, "failed to create google membership")
		}

		return mirrorCanonicalEdge(tx, user.IdentityID, *group.CanonicalGroupID)
	})
	if errTx != nil {
		return false, errors.Wrap(errTx, "membership transaction failed")
	}

	return true, nil
}

// importGooglePayload runs the full Google reconciliation order: users, then
// groups, then the membership pass.
func (r *Runner) importGooglePayload(cfg *models.GoogleConfiguration, payload *googledir.Payload, stats *Stats) error {
	if err := r.importGoogleUsers(cfg, payload.Users, stats); err != nil {
		return err
	}

	if err := r.importGoogleGroups(cfg, payload.Groups, stats); err != nil {
		return err
	}

	return r.resolveGoogleMemberships(cfg, payload.GroupMembers, stats)
}
