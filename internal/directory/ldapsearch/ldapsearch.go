// Package ldapsearch retrieves directory records from an LDAP or Active
// Directory server in bounded pages, following the paged-results control
// cookie until the result set is exhausted.
package ldapsearch

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"

	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/fixture"
)

// DefaultPageSize bounds a single page request when no size is configured.
const DefaultPageSize = 1000

// Conn is the subset of the go-ldap connection the retriever needs.
// It exists so tests can drive the paging loop without a server.
type Conn interface {
	Search(*ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// Dialer establishes a connection for a stored LDAP configuration.
type Dialer func(cfg *models.LDAPConfiguration) (Conn, error)

// Client performs paged searches against one configured directory source.
type Client struct {
	cfg      *models.LDAPConfiguration
	dial     Dialer
	pageSize uint32

	// fixtures, when set, snapshots every combined response (record) or
	// serves responses from disk instead of the network (replay).
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
			c.pageSize = uint32(size)
		}
	}
}

// WithDialer overrides how connections are established (used in tests).
func WithDialer(dial Dialer) Option {
	return func(c *Client) {
		c.dial = dial
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

// NewClient creates a Client for a stored LDAP configuration.
func NewClient(cfg *models.LDAPConfiguration, opts ...Option) *Client {
	c := &Client{
		cfg:      cfg,
		pageSize: DefaultPageSize,
		dial: func(cfg *models.LDAPConfiguration) (Conn, error) {
			return Connect(cfg)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Connect establishes a connection to the LDAP server described by cfg.
func Connect(cfg *models.LDAPConfiguration) (*ldap.Conn, error) {
	port := cfg.Port
	if port == 0 {
		port = 389
	}

	hostPort := net.JoinHostPort(cfg.Server, strconv.Itoa(port))

	var ldapURL string
	if cfg.UseSSL {
		ldapURL = "ldaps://" + hostPort
	} else {
		ldapURL = "ldap://" + hostPort
	}

	var tlsConfig *tls.Config
	if cfg.UseSSL || cfg.UseTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: cfg.SkipVerify, //nolint:gosec // skipping verifying tls is ok
			ServerName:         cfg.Server,
		}
	}

	conn, err := ldap.DialURL(ldapURL, ldap.DialWithTLSConfig(tlsConfig))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to LDAP server: %w", ErrConnectivity, err)
	}

	// Upgrade to TLS if requested (for non-SSL connections)
	if !cfg.UseSSL && cfg.UseTLS {
		if errStartTLS := conn.StartTLS(tlsConfig); errStartTLS != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close LDAP connection")
			}

			return nil, fmt.Errorf("%w: failed to start TLS: %w", ErrConnectivity, errStartTLS)
		}
	}

	if cfg.Timeout > 0 {
		conn.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	if cfg.BindDN != "" {
		if errBind := conn.Bind(cfg.BindDN, cfg.BindPassword); errBind != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close LDAP connection")
			}

			return nil, fmt.Errorf("%w: failed to bind with service account: %w", ErrConnectivity, errBind)
		}
	}

	return conn, nil
}

// Search issues bounded page requests for the given filter and attribute list,
// following the paging cookie until the server reports the result set is
// exhausted, and returns the concatenated response. kind selects the fixture
// file used for recording or replay.
func (c *Client) Search(filterExpr string, attrs []string, kind fixture.Kind) (*Response, error) {
	if c.replay && c.fixtures != nil {
		return c.loadFixture(kind)
	}

	conn, err := c.dial(c.cfg)
	if err != nil {
		return nil, err
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close LDAP connection")
		}
	}()

	var entries []*ldap.Entry

	paging := ldap.NewControlPaging(c.pageSize)

	var prevCookie []byte

	for {
		req := ldap.NewSearchRequest(
			c.cfg.BaseDN,
			ldap.ScopeWholeSubtree,
			ldap.NeverDerefAliases,
			0, // Size limit
			c.cfg.Timeout,
			false,
			filterExpr,
			attrs,
			[]ldap.Control{paging},
		)

		result, errSearch := conn.Search(req)
		if errSearch != nil {
			return nil, fmt.Errorf("%w: paged search failed: %w", ErrConnectivity, errSearch)
		}

		entries = append(entries, result.Entries...)

		ctrl := ldap.FindControl(result.Controls, ldap.ControlTypePaging)
		if ctrl == nil {
			break
		}

		pagingResult, ok := ctrl.(*ldap.ControlPaging)
		if !ok || len(pagingResult.Cookie) == 0 {
			break
		}

		// A server that never clears its cookie would page forever; an
		// unchanged cookie across two consecutive calls counts as exhausted.
		if prevCookie != nil && bytes.Equal(prevCookie, pagingResult.Cookie) {
			log.Warn().Str("filter", filterExpr).Msg("paging cookie did not advance, treating result set as exhausted")
			break
		}

		prevCookie = append(prevCookie[:0], pagingResult.Cookie...)
		paging.SetCookie(pagingResult.Cookie)
	}

	resp := toResponse(entries)

	if c.record && c.fixtures != nil {
		c.saveFixture(kind, resp)
	}

	return resp, nil
}

// toResponse converts go-ldap entries into the wire response shape. Attribute
// values that are not valid UTF-8 are carried as encoded values so the
// normalizer can apply its fallback representation.
func toResponse(entries []*ldap.Entry) *Response {
	resp := &Response{Entries: make([]Entry, 0, len(entries))}

	for _, entry := range entries {
		out := Entry{
			DN:         entry.DN,
			Attributes: make(map[string][]AttributeValue, len(entry.Attributes)),
		}

		for _, attr := range entry.Attributes {
			values := make([]AttributeValue, 0, len(attr.ByteValues))

			for _, raw := range attr.ByteValues {
				if utf8.Valid(raw) {
					values = append(values, AttributeValue{Text: string(raw)})
				} else {
					values = append(values, AttributeValue{Encoded: fmt.Sprintf("%x", raw)})
				}
			}

			out.Attributes[attr.Name] = values
		}

		resp.Entries = append(resp.Entries, out)
	}

	return resp
}

func (c *Client) loadFixture(kind fixture.Kind) (*Response, error) {
	raw, err := c.fixtures.Load("ldap", kind)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	var resp Response
	if errDecode := json.Unmarshal(raw, &resp); errDecode != nil {
		return nil, fmt.Errorf("failed to decode ldap fixture: %w", errDecode)
	}

	return &resp, nil
}

// saveFixture snapshots the combined response. Failures are logged, never
// surfaced; snapshots must not alter the returned data or fail the run.
func (c *Client) saveFixture(kind fixture.Kind, resp *Response) {
	raw, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode ldap fixture")
		return
	}

	if errSave := c.fixtures.Save("ldap", kind, raw); errSave != nil {
		log.Error().Err(errSave).Msg("failed to write ldap fixture")
	}
}
