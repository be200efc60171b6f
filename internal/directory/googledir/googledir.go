// Package googledir retrieves directory records from the Google Workspace
// Admin SDK in bounded pages, following the page token until the result set
// is exhausted, and assembles the raw import payload of users, groups, and
// per-group member lists.
package googledir

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	admin "google.golang.org/api/admin/directory/v1"

	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/fixture"
)

// DefaultPageSize bounds a single page request when no size is configured.
const DefaultPageSize = 500

// Payload is the combined raw import payload. Records stay loosely typed
// because the normalizer owns the schema mapping.
type Payload struct {
	Users        []map[string]any            `json:"users"`
	Groups       []map[string]any            `json:"groups"`
	GroupMembers map[string][]map[string]any `json:"group_members"`
}

// groupsPayload is the shape of the group-kind fixture file: the group list
// together with the per-group member map retrieved in the same pass.
type groupsPayload struct {
	Groups       []map[string]any            `json:"groups"`
	GroupMembers map[string][]map[string]any `json:"group_members"`
}

// Client performs paged retrieval against one configured Google source.
type Client struct {
	cfg      *models.GoogleConfiguration
	api      API
	pageSize int64

	fixtures *fixture.Store
	record   bool
	replay   bool
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize overrides the page size for bounded retrieval.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = int64(size)
		}
	}
}

// WithFixtures wires a fixture store for response recording or replay.
func WithFixtures(store *fixture.Store, record, replay bool) Option {
	return func(c *Client) {
		c.fixtures = store
		c.record = record
		c.replay = replay
	}
}

// NewClient creates a Client for a stored Google configuration.
func NewClient(cfg *models.GoogleConfiguration, api API, opts ...Option) *Client {
	c := &Client{
		cfg:      cfg,
		api:      api,
		pageSize: DefaultPageSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves the complete directory payload for the configured domain.
func (c *Client) Fetch() (*Payload, error) {
	if c.replay && c.fixtures != nil {
		return c.loadFixtures()
	}

	users, err := c.fetchUsers()
	if err != nil {
		return nil, err
	}

	groups, members, err := c.fetchGroups()
	if err != nil {
		return nil, err
	}

	payload := &Payload{Users: users, Groups: groups, GroupMembers: members}

	if c.record && c.fixtures != nil {
		c.saveFixtures(payload)
	}

	return payload, nil
}

func (c *Client) fetchUsers() ([]map[string]any, error) {
	var (
		out       []map[string]any
		pageToken string
		prevToken string
	)

	for {
		page, err := c.api.ListUsers(c.cfg.Domain, pageToken, c.pageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: user listing failed: %w", ErrConnectivity, err)
		}

		for _, user := range page.Users {
			record, errRecord := toRecord(user)
			if errRecord != nil {
				return nil, errRecord
			}

			out = append(out, record)
		}

		if page.NextPageToken == "" {
			break
		}

		// A server that never clears its token would page forever; an
		// unchanged token across two consecutive calls counts as exhausted.
		if page.NextPageToken == prevToken {
			log.Warn().Str("domain", c.cfg.Domain).Msg("user page token did not advance, treating result set as exhausted")
			break
		}

		prevToken = page.NextPageToken
		pageToken = page.NextPageToken
	}

	return out, nil
}

func (c *Client) fetchGroups() ([]map[string]any, map[string][]map[string]any, error) {
	var (
		groups    []*admin.Group
		pageToken string
		prevToken string
	)

	for {
		page, err := c.api.ListGroups(c.cfg.Domain, pageToken, c.pageSize)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: group listing failed: %w", ErrConnectivity, err)
		}

		groups = append(groups, page.Groups...)

		if page.NextPageToken == "" {
			break
		}

		if page.NextPageToken == prevToken {
			log.Warn().Str("domain", c.cfg.Domain).Msg("group page token did not advance, treating result set as exhausted")
			break
		}

		prevToken = page.NextPageToken
		pageToken = page.NextPageToken
	}

	out := make([]map[string]any, 0, len(groups))
	members := make(map[string][]map[string]any, len(groups))

	for _, group := range groups {
		record, err := toRecord(group)
		if err != nil {
			return nil, nil, err
		}

		out = append(out, record)

		groupMembers, err := c.fetchMembers(group.Id)
		if err != nil {
			return nil, nil, err
		}

		members[group.Id] = groupMembers
	}

	return out, members, nil
}

func (c *Client) fetchMembers(groupKey string) ([]map[string]any, error) {
	var (
		out       []map[string]any
		pageToken string
		prevToken string
	)

	for {
		page, err := c.api.ListMembers(groupKey, pageToken, c.pageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: member listing failed: %w", ErrConnectivity, err)
		}

		for _, member := range page.Members {
			record, errRecord := toRecord(member)
			if errRecord != nil {
				return nil, errRecord
			}

			out = append(out, record)
		}

		if page.NextPageToken == "" {
			break
		}

		if page.NextPageToken == prevToken {
			log.Warn().Str("group", groupKey).Msg("member page token did not advance, treating result set as exhausted")
			break
		}

		prevToken = page.NextPageToken
		pageToken = page.NextPageToken
	}

	return out, nil
}

// toRecord converts an SDK struct into the loosely-typed wire record the
// normalizer consumes, using its own JSON tags so keys match the directory
// wire format (primaryEmail, name.givenName, ...).
func toRecord(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode directory record: %w", err)
	}

	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode directory record: %w", err)
	}

	return record, nil
}

func (c *Client) loadFixtures() (*Payload, error) {
	rawUsers, err := c.fixtures.Load("google", fixture.KindUser)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	var payload Payload
	if errDecode := json.Unmarshal(rawUsers, &payload.Users); errDecode != nil {
		return nil, fmt.Errorf("failed to decode google user fixture: %w", errDecode)
	}

	rawGroups, err := c.fixtures.Load("google", fixture.KindGroup)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	var groups groupsPayload
	if errDecode := json.Unmarshal(rawGroups, &groups); errDecode != nil {
		return nil, fmt.Errorf("failed to decode google group fixture: %w", errDecode)
	}

	payload.Groups = groups.Groups
	payload.GroupMembers = groups.GroupMembers

	return &payload, nil
}

// saveFixtures snapshots the combined payload. Failures are logged, never
// surfaced; snapshots must not alter the returned data or fail the run.
func (c *Client) saveFixtures(payload *Payload) {
	rawUsers, err := json.Marshal(payload.Users)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode google user fixture")
		return
	}

	if errSave := c.fixtures.Save("google", fixture.KindUser, rawUsers); errSave != nil {
		log.Error().Err(errSave).Msg("failed to write google user fixture")
	}

	rawGroups, err := json.Marshal(groupsPayload{Groups: payload.Groups, GroupMembers: payload.GroupMembers})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode google group fixture")
		return
	}

	if errSave := c.fixtures.Save("google", fixture.KindGroup, rawGroups); errSave != nil {
		log.Error().Err(errSave).Msg("failed to write google group fixture")
	}
}
