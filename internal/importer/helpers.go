package importer

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
)

// ensureIdentity finds or creates the identity matching (name, kind). On a
// match the description and source tag are only filled in when still empty,
// so a same-named identity reported by several sources keeps the provenance
// of whichever import recorded it first.
func (r *Runner) ensureIdentity(kind models.IdentityKind, name, description, sourceTag string) (*models.Identity, error) {
	var identity models.Identity

	err := r.db.Where("name = ? AND kind = ?", name, kind).First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		identity = models.Identity{
			Kind:        kind,
			Name:        name,
			Description: description,
			SourceTag:   sourceTag,
		}

		if errCreate := r.db.Create(&identity).Error; errCreate != nil {
			return nil, errors.Wrap(errCreate, "failed to create identity")
		}

		return &identity, nil
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to look up identity")
	}

	changed := false

	if identity.Description == "" && description != "" {
		identity.Description = description
		changed = true
	}

	if identity.SourceTag == "" && sourceTag != "" {
		identity.SourceTag = sourceTag
		changed = true
	}

	if changed {
		if errSave := r.db.Save(&identity).Error; errSave != nil {
			return nil, errors.Wrap(errSave, "failed to refresh identity")
		}
	}

	return &identity, nil
}

// ensureIdentifier attaches a value to an identity unless the exact
// (value, kind, identity) combination is already stored. Empty values are
// ignored.
func (r *Runner) ensureIdentifier(value string, kind models.IdentifierKind, identityID uint, stats *Stats) error {
	if value == "" {
		return nil
	}

	var identifier models.Identifier

	err := r.db.Where("value = ? AND kind = ? AND identity_id = ?", value, kind, identityID).
		First(&identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		identifier = models.Identifier{Value: value, Kind: kind, IdentityID: identityID}

		if errCreate := r.db.Create(&identifier).Error; errCreate != nil {
			return errors.Wrap(errCreate, "failed to create identifier")
		}

		stats.Identifiers++

		return nil
	}

	return errors.Wrap(err, "failed to look up identifier")
}

// ensureAlias stores an alias as an email identifier when it parses as an
// email address and as a plain name identifier otherwise.
func (r *Runner) ensureAlias(alias string, identityID uint, stats *Stats) error {
	return r.ensureIdentifier(alias, r.classifyAlias(alias), identityID, stats)
}

// ensureCanonicalGroup finds or creates the canonical group for a source
// group record. When the record already points at a canonical group, that
// group's name is refreshed from the source record; otherwise the lookup
// matches on (name, group_type) so the same group reported by several
// configurations shares one canonical row.
func (r *Runner) ensureCanonicalGroup(existingID *uint, name string, groupType models.GroupType, description string) (*models.CanonicalGroup, error) {
	var group models.CanonicalGroup

	if existingID != nil {
		err := r.db.First(&group, *existingID).Error
		if err == nil {
			if group.Name != name {
				group.Name = name

				if errSave := r.db.Save(&group).Error; errSave != nil {
					return nil, errors.Wrap(errSave, "failed to refresh canonical group")
				}
			}

			return &group, nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "failed to load canonical group")
		}
	}

	err := r.db.Where("name = ? AND group_type = ?", name, groupType).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		group = models.CanonicalGroup{Name: name, GroupType: groupType, Description: description}

		if errCreate := r.db.Create(&group).Error; errCreate != nil {
			return nil, errors.Wrap(errCreate, "failed to create canonical group")
		}

		return &group, nil
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to look up canonical group")
	}

	return &group, nil
}

// mirrorCanonicalEdge adds the canonical membership edge inside the caller's
// transaction. Existing edges are left alone.
func mirrorCanonicalEdge(tx *gorm.DB, identityID, canonicalGroupID uint) error {
	var edge models.IdentityGroup

	err := tx.Where("identity_id = ? AND canonical_group_id = ?", identityID, canonicalGroupID).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		edge = models.IdentityGroup{IdentityID: identityID, CanonicalGroupID: canonicalGroupID}

		return errors.Wrap(tx.Create(&edge).Error, "failed to create canonical membership")
	}

	return errors.Wrap(err, "failed to look up canonical membership")
}
