// Package sourceconfig provides CRUD operations for stored directory source
// configurations. Lookups with a zero ID return the first stored
// configuration, which is what the CLI defaults to.
package sourceconfig

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
)

var (
	// ErrConfigurationNotFound is returned when no configuration matches.
	ErrConfigurationNotFound = errors.New("source configuration not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

var validate = validator.New() //nolint:gochecknoglobals

// GetLDAP retrieves an LDAP configuration by ID, or the first stored one when
// id is zero.
func GetLDAP(db *gorm.DB, id uint) (*models.LDAPConfiguration, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db
	if id != 0 {
		query = query.Where("id = ?", id)
	}

	var cfg models.LDAPConfiguration

	result := query.First(&cfg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrConfigurationNotFound
		}

		return nil, result.Error
	}

	return &cfg, nil
}

// GetGoogle retrieves a Google configuration by ID, or the first stored one
// when id is zero.
func GetGoogle(db *gorm.DB, id uint) (*models.GoogleConfiguration, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db
	if id != 0 {
		query = query.Where("id = ?", id)
	}

	var cfg models.GoogleConfiguration

	result := query.First(&cfg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrConfigurationNotFound
		}

		return nil, result.Error
	}

	return &cfg, nil
}

// GetAllLDAP retrieves all stored LDAP configurations.
func GetAllLDAP(db *gorm.DB) ([]models.LDAPConfiguration, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var configs []models.LDAPConfiguration

	result := db.Find(&configs)
	if result.Error != nil {
		return nil, result.Error
	}

	return configs, nil
}

// GetAllGoogle retrieves all stored Google configurations.
func GetAllGoogle(db *gorm.DB) ([]models.GoogleConfiguration, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var configs []models.GoogleConfiguration

	result := db.Find(&configs)
	if result.Error != nil {
		return nil, result.Error
	}

	return configs, nil
}

// CreateLDAP validates and stores a new LDAP configuration.
func CreateLDAP(db *gorm.DB, cfg *models.LDAPConfiguration) error {
	if db == nil {
		return ErrDBNil
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	return db.Create(cfg).Error
}

// CreateGoogle validates and stores a new Google configuration.
func CreateGoogle(db *gorm.DB, cfg *models.GoogleConfiguration) error {
	if db == nil {
		return ErrDBNil
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	return db.Create(cfg).Error
}
