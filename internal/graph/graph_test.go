package graph

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Identity{},
		&models.CanonicalGroup{},
		&models.GoogleConfiguration{},
		&models.GoogleUser{},
		&models.GoogleGroup{},
		&models.GoogleMembership{},
		&models.LDAPConfiguration{},
		&models.LDAPUser{},
		&models.LDAPGroup{},
		&models.LDAPMembership{},
	))

	return db
}

func TestBuildLDAP(t *testing.T) {
	db := newTestDB(t)

	cfg := &models.LDAPConfiguration{Server: "dc.example.org", BindDN: "cn=svc"}
	require.NoError(t, db.Create(cfg).Error)

	ada := &models.LDAPUser{
		CN: "ada", Name: "Ada <Lovelace>", ObjectGUID: "guid-a",
		LastLogon: "1970-01-01T00:00:00Z", LDAPConfigurationID: cfg.ID,
	}
	bob := &models.LDAPUser{CN: "bob", Name: "Bob", ObjectGUID: "guid-b", LDAPConfigurationID: cfg.ID}
	require.NoError(t, db.Create(ada).Error)
	require.NoError(t, db.Create(bob).Error)

	admins := &models.LDAPGroup{CN: "admins", ObjectGUID: "guid-g1", LDAPConfigurationID: cfg.ID}
	empty := &models.LDAPGroup{CN: "empty", ObjectGUID: "guid-g2", LDAPConfigurationID: cfg.ID}
	require.NoError(t, db.Create(admins).Error)
	require.NoError(t, db.Create(empty).Error)

	require.NoError(t, db.Create(&models.LDAPMembership{LDAPUserID: ada.ID, LDAPGroupID: admins.ID}).Error)
	require.NoError(t, db.Create(&models.LDAPMembership{LDAPUserID: bob.ID, LDAPGroupID: admins.ID}).Error)

	g, err := NewBuilder(db).BuildLDAP(cfg)
	require.NoError(t, err)

	// two users, then the one non-empty group
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "user", g.Nodes[0].NodeType)
	assert.Equal(t, "Ada &lt;Lovelace&gt;", g.Nodes[0].Name)
	assert.Equal(t, "1970-01-01T00:00:00Z", g.Nodes[0].LastLogon)
	assert.Equal(t, "user", g.Nodes[1].NodeType)
	assert.Equal(t, "group", g.Nodes[2].NodeType)
	assert.Equal(t, "admins", g.Nodes[2].Name)

	for i, node := range g.Nodes {
		assert.Equal(t, i, node.Index)
	}

	require.Len(t, g.Links, 2)
	assert.Equal(t, Link{Value: "edge0_2", Source: 0, Target: 2}, g.Links[0])
	assert.Equal(t, Link{Value: "edge1_2", Source: 1, Target: 2}, g.Links[1])

	// a second build yields the same document
	again, err := NewBuilder(db).BuildLDAP(cfg)
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestBuildLDAPEmptyConfiguration(t *testing.T) {
	db := newTestDB(t)

	cfg := &models.LDAPConfiguration{Server: "dc.example.org", BindDN: "cn=svc"}
	require.NoError(t, db.Create(cfg).Error)

	g, err := NewBuilder(db).BuildLDAP(cfg)
	require.NoError(t, err)

	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)
}

func TestBuildLDAPSkipsMembersOutsideConfiguration(t *testing.T) {
	db := newTestDB(t)

	cfg := &models.LDAPConfiguration{Server: "dc1.example.org", BindDN: "cn=svc"}
	other := &models.LDAPConfiguration{Server: "dc2.example.org", BindDN: "cn=svc"}
	require.NoError(t, db.Create(cfg).Error)
	require.NoError(t, db.Create(other).Error)

	outsider := &models.LDAPUser{CN: "eve", ObjectGUID: "guid-x", LDAPConfigurationID: other.ID}
	require.NoError(t, db.Create(outsider).Error)

	group := &models.LDAPGroup{CN: "admins", ObjectGUID: "guid-g", LDAPConfigurationID: cfg.ID}
	require.NoError(t, db.Create(group).Error)

	require.NoError(t, db.Create(&models.LDAPMembership{LDAPUserID: outsider.ID, LDAPGroupID: group.ID}).Error)

	g, err := NewBuilder(db).BuildLDAP(cfg)
	require.NoError(t, err)

	// the group's only member is not part of this configuration, so the
	// group does not appear either
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)
}

func TestBuildGoogle(t *testing.T) {
	db := newTestDB(t)

	cfg := &models.GoogleConfiguration{Domain: "example.org"}
	require.NoError(t, db.Create(cfg).Error)

	ada := &models.GoogleUser{
		FirstName: "Ada", Surname: "Lovelace", GoogleID: "100",
		PrimaryEmail: "ada@example.org", GoogleConfigurationID: cfg.ID,
	}
	grace := &models.GoogleUser{
		FirstName: "Grace", Surname: "Hopper", GoogleID: "200",
		PrimaryEmail: "grace@example.org", GoogleConfigurationID: cfg.ID,
	}
	require.NoError(t, db.Create(ada).Error)
	require.NoError(t, db.Create(grace).Error)

	eng := &models.GoogleGroup{Name: "Engineering", GoogleID: "g1", GoogleConfigurationID: cfg.ID}
	idle := &models.GoogleGroup{Name: "Idle", GoogleID: "g2", GoogleConfigurationID: cfg.ID}
	require.NoError(t, db.Create(eng).Error)
	require.NoError(t, db.Create(idle).Error)

	require.NoError(t, db.Create(&models.GoogleMembership{GoogleUserID: grace.ID, GoogleGroupID: eng.ID}).Error)

	g, err := NewBuilder(db).BuildGoogle(cfg)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "Ada Lovelace", g.Nodes[0].Name)
	assert.Equal(t, "ada@example.org", g.Nodes[0].PrimaryEmail)
	assert.Equal(t, "Grace Hopper", g.Nodes[1].Name)
	assert.Equal(t, "group", g.Nodes[2].NodeType)
	assert.Equal(t, "Engineering", g.Nodes[2].Name)

	require.Len(t, g.Links, 1)
	assert.Equal(t, Link{Value: "edge1_2", Source: 1, Target: 2}, g.Links[0])
}
