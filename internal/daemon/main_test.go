package daemon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirgraph/dirgraph/internal/config"
	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/directory/ldapsearch"
	"github.com/dirgraph/dirgraph/internal/fixture"
	"github.com/dirgraph/dirgraph/internal/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DevMode: true,
		Title:   "dirgraph",
		DB: config.DB{
			GormEngine: "sqlite",
			Name:       ":memory:",
		},
		Log: logger.Log{
			LogLevel:    "info",
			AppName:     "dirgraph",
			ServiceName: "dirgraph-test",
			Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
		},
		Import: config.Import{PageSize: 100},
	}
}

func TestNewSeedsDevConfiguration(t *testing.T) {
	d, err := New(testConfig(t))
	require.NoError(t, err)

	var count int64
	require.NoError(t, d.db.Model(&models.LDAPConfiguration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunImportUnknownSource(t *testing.T) {
	d, err := New(testConfig(t))
	require.NoError(t, err)

	err = d.RunImport("bogus", 0)
	require.ErrorIs(t, err, ErrUnknownSource)

	_, err = d.ExportGraph("bogus", 0)
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestRunImportLDAPFromFixtures(t *testing.T) {
	cfg := testConfig(t)
	cfg.Import.FixtureDir = t.TempDir()
	cfg.Import.ReplayFixtures = true

	store := fixture.NewStore(cfg.Import.FixtureDir)

	groupData, err := json.Marshal(&ldapsearch.Response{Entries: []ldapsearch.Entry{{
		DN: "cn=admins,dc=example,dc=org",
		Attributes: map[string][]ldapsearch.AttributeValue{
			"objectGUID":        {{Text: "group-guid"}},
			"cn":                {{Text: "admins"}},
			"distinguishedName": {{Text: "cn=admins,dc=example,dc=org"}},
		},
	}}})
	require.NoError(t, err)
	require.NoError(t, store.Save("ldap", fixture.KindGroup, groupData))

	userData, err := json.Marshal(&ldapsearch.Response{Entries: []ldapsearch.Entry{{
		DN: "cn=ada,dc=example,dc=org",
		Attributes: map[string][]ldapsearch.AttributeValue{
			"objectGUID":     {{Text: "guid-1"}},
			"cn":             {{Text: "ada"}},
			"name":           {{Text: "Ada Lovelace"}},
			"displayName":    {{Text: "Ada Lovelace"}},
			"sAMAccountName": {{Text: "ada"}},
			"memberOf":       {{Text: "cn=admins,dc=example,dc=org"}},
		},
	}}})
	require.NoError(t, err)
	require.NoError(t, store.Save("ldap", fixture.KindUser, userData))

	d, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, d.RunImport(SourceLDAP, 0))

	g, err := d.ExportGraph(SourceLDAP, 0)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "user", g.Nodes[0].NodeType)
	assert.Equal(t, "Ada Lovelace", g.Nodes[0].Name)
	assert.Equal(t, "group", g.Nodes[1].NodeType)

	require.Len(t, g.Links, 1)
	assert.Equal(t, "edge0_1", g.Links[0].Value)
}
