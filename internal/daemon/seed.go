package daemon

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/config"
	"github.com/dirgraph/dirgraph/internal/db/controller/sourceconfig"
	"github.com/dirgraph/dirgraph/internal/db/models"
)

// seed creates a sample LDAP configuration in dev mode so a fresh database
// has something to import against (typically combined with fixture replay).
func seed(cfg *config.Config, db *gorm.DB) error {
	if !cfg.DevMode {
		return nil
	}

	var count int64
	if err := db.Model(&models.LDAPConfiguration{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count ldap configurations")
	}

	if count > 0 {
		return nil
	}

	err := sourceconfig.CreateLDAP(db,
		&models.LDAPConfiguration{
			Server:       "dc.example.org",
			Port:         389,
			BindDN:       "cn=Administrator,cn=Users,dc=example,dc=org",
			BindPassword: "changeme",
			BaseDN:       "dc=example,dc=org",
		},
	)

	return errors.Wrap(err, "failed to seed ldap configuration")
}
