package models

import "time"

// GoogleConfiguration holds the connection parameters for a Google Workspace
// Directory source. Each import run is scoped to one configuration; source
// record natural keys are unique per configuration so two configurations may
// hold records with coincidentally equal native ids.
type GoogleConfiguration struct {
	// ID is the unique identifier for the configuration.
	ID uint `gorm:"primaryKey"`
	// Domain is the primary Google Workspace domain.
	Domain string `gorm:"size:100;not null;unique" validate:"required"`
	// CredentialsFile is the path to the service account credentials JSON.
	CredentialsFile string `gorm:"size:300"`
	// Subject is the user to impersonate for domain-wide delegation.
	Subject string `gorm:"size:300"`
	// CreatedAt is the timestamp when the configuration was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the configuration was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the GoogleConfiguration model.
func (GoogleConfiguration) TableName() string {
	return "google_configurations"
}
