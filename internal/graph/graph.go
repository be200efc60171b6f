// Package graph renders the stored records of one source configuration as a
// {nodes, links} document for visualization. Nodes carry an explicit element
// index and links reference those indexes, so consumers never depend on list
// position. Groups appear only when they have at least one member.
package graph

import (
	"fmt"
	"html"
	"sort"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/db/models"
)

// Node is one graph element. Display fields are HTML-escaped; the detail
// fields are present only on the node types that carry them.
type Node struct {
	Index    int    `json:"index"`
	ID       uint   `json:"id"`
	NodeType string `json:"node_type"`
	Name     string `json:"name"`

	AccountExpires         string `json:"account_expires,omitempty"`
	AdminCount             string `json:"admin_count,omitempty"`
	IsCriticalSystemObject string `json:"is_critical_system_object,omitempty"`
	LastLogon              string `json:"last_logon,omitempty"`
	LogonCount             string `json:"logon_count,omitempty"`
	PwdLastSet             string `json:"pwd_last_set,omitempty"`

	PrimaryEmail  string `json:"primary_email,omitempty"`
	LastLoginTime string `json:"last_login_time,omitempty"`
	Suspended     bool   `json:"suspended,omitempty"`
}

// Link is one membership edge between a user node and a group node.
type Link struct {
	Value  string `json:"value"`
	Source int    `json:"source"`
	Target int    `json:"target"`
}

// Graph is the export document.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Builder reads stored records and assembles export graphs.
type Builder struct {
	db *gorm.DB
}

// NewBuilder creates a Builder on top of the given database handle.
func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

// edgeValue names an edge after the node indexes it connects.
func edgeValue(userIndex, groupIndex int) string {
	return fmt.Sprintf("edge%d_%d", userIndex, groupIndex)
}

// BuildLDAP assembles the graph for one LDAP configuration. Users come first
// in cn order, then every group with at least one member in cn order, with
// each group's edges sorted by user index.
func (b *Builder) BuildLDAP(cfg *models.LDAPConfiguration) (*Graph, error) {
	graph := &Graph{Nodes: []Node{}, Links: []Link{}}

	var users []models.LDAPUser

	err := b.db.Where("ldap_configuration_id = ?", cfg.ID).
		Order("cn, distinguished_name").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ldap users")
	}

	userIndex := make(map[uint]int, len(users))

	for _, user := range users {
		userIndex[user.ID] = len(graph.Nodes)
		graph.Nodes = append(graph.Nodes, Node{
			Index:                  len(graph.Nodes),
			ID:                     user.ID,
			NodeType:               "user",
			Name:                   html.EscapeString(user.Name),
			AccountExpires:         user.AccountExpires,
			AdminCount:             user.AdminCount,
			IsCriticalSystemObject: user.IsCriticalSystemObject,
			LastLogon:              user.LastLogon,
			LogonCount:             user.LogonCount,
			PwdLastSet:             user.PwdLastSet,
		})
	}

	var groups []models.LDAPGroup

	err = b.db.Where("ldap_configuration_id = ?", cfg.ID).
		Order("cn, distinguished_name").Find(&groups).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ldap groups")
	}

	for _, group := range groups {
		var memberships []models.LDAPMembership

		if err := b.db.Where("ldap_group_id = ?", group.ID).Find(&memberships).Error; err != nil {
			return nil, errors.Wrap(err, "failed to load ldap memberships")
		}

		members := make([]int, 0, len(memberships))

		for _, m := range memberships {
			if idx, ok := userIndex[m.LDAPUserID]; ok {
				members = append(members, idx)
			}
		}

		if len(members) == 0 {
			continue
		}

		sort.Ints(members)

		groupIndex := len(graph.Nodes)
		graph.Nodes = append(graph.Nodes, Node{
			Index:    groupIndex,
			ID:       group.ID,
			NodeType: "group",
			Name:     html.EscapeString(group.CN),
		})

		for _, idx := range members {
			graph.Links = append(graph.Links, Link{
				Value:  edgeValue(idx, groupIndex),
				Source: idx,
				Target: groupIndex,
			})
		}
	}

	return graph, nil
}

// BuildGoogle assembles the graph for one Google configuration. Users come
// first in name order, then every group with at least one member in name
// order, with each group's edges sorted by user index.
func (b *Builder) BuildGoogle(cfg *models.GoogleConfiguration) (*Graph, error) {
	graph := &Graph{Nodes: []Node{}, Links: []Link{}}

	var users []models.GoogleUser

	err := b.db.Where("google_configuration_id = ?", cfg.ID).
		Order("first_name, surname, google_id").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load google users")
	}

	userIndex := make(map[uint]int, len(users))

	for i := range users {
		user := &users[i]

		userIndex[user.ID] = len(graph.Nodes)
		graph.Nodes = append(graph.Nodes, Node{
			Index:         len(graph.Nodes),
			ID:            user.ID,
			NodeType:      "user",
			Name:          html.EscapeString(user.DisplayName()),
			PrimaryEmail:  user.PrimaryEmail,
			LastLoginTime: user.LastLoginTime,
			Suspended:     user.Suspended,
		})
	}

	var groups []models.GoogleGroup

	err = b.db.Where("google_configuration_id = ?", cfg.ID).
		Order("name, google_id").Find(&groups).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load google groups")
	}

	for _, group := range groups {
		var memberships []models.GoogleMembership

		if err := b.db.Where("google_group_id = ?", group.ID).Find(&memberships).Error; err != nil {
			return nil, errors.Wrap(err, "failed to load google memberships")
		}

		members := make([]int, 0, len(memberships))

		for _, m := range memberships {
			if idx, ok := userIndex[m.GoogleUserID]; ok {
				members = append(members, idx)
			}
		}

		if len(members) == 0 {
			continue
		}

		sort.Ints(members)

		groupIndex := len(graph.Nodes)
		graph.Nodes = append(graph.Nodes, Node{
			Index:    groupIndex,
			ID:       group.ID,
			NodeType: "group",
			Name:     html.EscapeString(group.Name),
		})

		for _, idx := range members {
			graph.Links = append(graph.Links, Link{
				Value:  edgeValue(idx, groupIndex),
				Source: idx,
				Target: groupIndex,
			})
		}
	}

	return graph, nil
}
