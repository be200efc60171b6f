package ldapsearch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/fixture"
)

// fakeConn feeds a scripted sequence of pages to the retriever.
type fakeConn struct {
	pages  []*ldap.SearchResult
	calls  int
	closed bool
	err    error
}

func (f *fakeConn) Search(_ *ldap.SearchRequest) (*ldap.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	if f.calls >= len(f.pages) {
		return &ldap.SearchResult{}, nil
	}

	page := f.pages[f.calls]
	f.calls++

	return page, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func pageWithCookie(cookie string, names ...string) *ldap.SearchResult {
	result := &ldap.SearchResult{}

	for _, name := range names {
		result.Entries = append(result.Entries, &ldap.Entry{
			DN: "cn=" + name + ",dc=example,dc=test",
			Attributes: []*ldap.EntryAttribute{
				{Name: "cn", Values: []string{name}, ByteValues: [][]byte{[]byte(name)}},
			},
		})
	}

	paging := ldap.NewControlPaging(5)
	paging.SetCookie([]byte(cookie))
	result.Controls = append(result.Controls, paging)

	return result
}

func newTestClient(conn *fakeConn, opts ...Option) *Client {
	cfg := &models.LDAPConfiguration{
		Server: "dc.example.test",
		BindDN: "cn=Administrator,cn=Users,dc=example,dc=test",
		BaseDN: "dc=example,dc=test",
	}

	opts = append(opts, WithDialer(func(_ *models.LDAPConfiguration) (Conn, error) {
		return conn, nil
	}))

	return NewClient(cfg, opts...)
}

func TestSearchFollowsPagingCookie(t *testing.T) {
	conn := &fakeConn{pages: []*ldap.SearchResult{
		pageWithCookie("cookie-a", "alice", "bob"),
		pageWithCookie("cookie-b", "carol"),
		pageWithCookie("", "dave"),
	}}

	client := newTestClient(conn)

	resp, err := client.Search("(objectclass=user)", []string{"cn"}, fixture.KindUser)
	require.NoError(t, err)

	require.Len(t, resp.Entries, 4)
	assert.Equal(t, 3, conn.calls)
	assert.True(t, conn.closed)

	// Pages concatenate in order.
	var names []string
	for _, entry := range resp.Entries {
		names = append(names, entry.Attributes["cn"][0].Text)
	}

	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, names)
}

func TestSearchStopsOnStalledCookie(t *testing.T) {
	// A server that keeps returning the same cookie must not loop forever.
	conn := &fakeConn{pages: []*ldap.SearchResult{
		pageWithCookie("stuck", "alice"),
		pageWithCookie("stuck", "alice"),
		pageWithCookie("stuck", "alice"),
	}}

	client := newTestClient(conn)

	resp, err := client.Search("(objectclass=user)", []string{"cn"}, fixture.KindUser)
	require.NoError(t, err)

	assert.Equal(t, 2, conn.calls)
	assert.Len(t, resp.Entries, 2)
}

func TestSearchConnectivityFailureIsFatal(t *testing.T) {
	conn := &fakeConn{err: errors.New("connection reset")}

	client := newTestClient(conn)

	_, err := client.Search("(objectclass=user)", []string{"cn"}, fixture.KindUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestSearchRecordsFixture(t *testing.T) {
	conn := &fakeConn{pages: []*ldap.SearchResult{
		pageWithCookie("", "alice"),
	}}

	store := fixture.NewStore(t.TempDir())
	client := newTestClient(conn, WithFixtures(store, true, false))

	resp, err := client.Search("(objectclass=user)", []string{"cn"}, fixture.KindUser)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	raw, err := store.Load("ldap", fixture.KindUser)
	require.NoError(t, err)

	var recorded Response
	require.NoError(t, json.Unmarshal(raw, &recorded))
	assert.Equal(t, resp.Entries, recorded.Entries)
}

func TestSearchReplaysFixture(t *testing.T) {
	store := fixture.NewStore(t.TempDir())
	require.NoError(t, store.Save("ldap", fixture.KindGroup,
		[]byte(`{"entries":[{"dn":"cn=admins","attributes":{"cn":["admins"],"junk":[{"encoded":"dGVzdA=="}]}}]}`)))

	// replay must not touch the network at all
	client := newTestClient(&fakeConn{err: errors.New("should not dial")},
		WithFixtures(store, false, true))

	resp, err := client.Search("(objectclass=group)", []string{"cn"}, fixture.KindGroup)
	require.NoError(t, err)

	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "admins", resp.Entries[0].Attributes["cn"][0].Text)
	assert.Equal(t, "dGVzdA==", resp.Entries[0].Attributes["junk"][0].Encoded)
}

func TestAttributeValueJSONRoundTrip(t *testing.T) {
	in := []AttributeValue{{Text: "plain"}, {Encoded: "//4="}}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["plain",{"encoded":"//4="}]`, string(raw))

	var out []AttributeValue
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}
