package importer

import (
	"github.com/rs/zerolog/log"

	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/directory/googledir"
	"github.com/dirgraph/dirgraph/internal/directory/ldapsearch"
	"github.com/dirgraph/dirgraph/internal/fixture"
	"github.com/dirgraph/dirgraph/internal/schema"
	"github.com/dirgraph/dirgraph/internal/uniuri"
)

// runIDLen is the length of the random run identifier carried in log lines.
const runIDLen = 8

// RunLDAP retrieves and reconciles everything one LDAP configuration reports.
// Groups go first so the user pass can resolve memberOf references against
// them. Only retrieval failures abort the run; per-record anomalies are
// skipped and counted.
func (r *Runner) RunLDAP(cfg *models.LDAPConfiguration, client *ldapsearch.Client) (*Stats, error) {
	unlock := r.locks.acquire("ldap", cfg.ID)
	defer unlock()

	runID := uniuri.NewLen(runIDLen)

	log.Info().Str("source", "ldap").Str("run_id", runID).Str("server", cfg.Server).
		Msg("import run starting")

	stats := &Stats{}

	groups, err := client.Search(ldapGroupFilter, schema.LDAPGroup.Externals(), fixture.KindGroup)
	if err != nil {
		return nil, err
	}

	if err := r.importLDAPGroups(cfg, groups, stats); err != nil {
		return nil, err
	}

	users, err := client.Search(ldapUserFilter, ldapUserAttributes(), fixture.KindUser)
	if err != nil {
		return nil, err
	}

	if err := r.importLDAPUsers(cfg, users, stats); err != nil {
		return nil, err
	}

	stats.Log("ldap", runID)

	return stats, nil
}

// RunGoogle retrieves and reconciles everything one Google configuration
// reports: users, then groups, then the membership pass.
func (r *Runner) RunGoogle(cfg *models.GoogleConfiguration, client *googledir.Client) (*Stats, error) {
	unlock := r.locks.acquire("google", cfg.ID)
	defer unlock()

	runID := uniuri.NewLen(runIDLen)

	log.Info().Str("source", "google").Str("run_id", runID).Str("domain", cfg.Domain).
		Msg("import run starting")

	stats := &Stats{}

	payload, err := client.Fetch()
	if err != nil {
		return nil, err
	}

	if err := r.importGooglePayload(cfg, payload, stats); err != nil {
		return nil, err
	}

	stats.Log("google", runID)

	return stats, nil
}
