// Package importer implements the directory reconciliation engine: it
// normalizes raw source records into canonical attribute bags, upserts them
// against the stored source records by their natural keys, links them to
// cross-source identities and groups, and resolves membership edges at both
// the source and canonical levels.
package importer

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
)

// descriptionGoogle is the provenance note attached to identities created
// from a Google Workspace import.
const descriptionGoogle = "Exported from Google Apps"

// descriptionLDAP is the provenance note attached to canonical groups created
// from an LDAP import.
const descriptionLDAP = "Imported group from LDAP"

// Runner reconciles directory payloads for stored source configurations.
// A Runner is safe for concurrent use; runs against the same configuration
// are serialized by a per-configuration lock.
type Runner struct {
	db       *gorm.DB
	validate *validator.Validate
	locks    *runLocks
}

// NewRunner creates a Runner on top of the given database handle.
func NewRunner(db *gorm.DB) *Runner {
	return &Runner{
		db:       db,
		validate: validator.New(),
		locks:    newRunLocks(),
	}
}

// classifyAlias decides whether an alias is stored as an email identifier or
// a plain name identifier.
func (r *Runner) classifyAlias(alias string) models.IdentifierKind {
	if r.validate.Var(alias, "email") == nil {
		return models.IdentifierKindEmail
	}

	return models.IdentifierKindName
}
