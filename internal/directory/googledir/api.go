package googledir

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/option"

	"github.com/dirgraph/dirgraph/internal/db/models"
)

// API is the subset of the Admin SDK directory service the retriever needs.
// It exists so tests can drive the paging loop without credentials.
type API interface {
	ListUsers(domain, pageToken string, pageSize int64) (*admin.Users, error)
	ListGroups(domain, pageToken string, pageSize int64) (*admin.Groups, error)
	ListMembers(groupKey, pageToken string, pageSize int64) (*admin.Members, error)
}

// sdkAPI adapts the real Admin SDK service to the API interface.
type sdkAPI struct {
	service *admin.Service
}

func (a *sdkAPI) ListUsers(domain, pageToken string, pageSize int64) (*admin.Users, error) {
	call := a.service.Users.List().Domain(domain).MaxResults(pageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	return call.Do() //nolint: wrapcheck
}

func (a *sdkAPI) ListGroups(domain, pageToken string, pageSize int64) (*admin.Groups, error) {
	call := a.service.Groups.List().Domain(domain).MaxResults(pageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	return call.Do() //nolint: wrapcheck
}

func (a *sdkAPI) ListMembers(groupKey, pageToken string, pageSize int64) (*admin.Members, error) {
	call := a.service.Members.List(groupKey).MaxResults(pageSize)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	return call.Do() //nolint: wrapcheck
}

// NewAPI builds the real Admin SDK client for a stored Google configuration,
// using service account credentials with domain-wide delegation.
func NewAPI(ctx context.Context, cfg *models.GoogleConfiguration) (API, error) {
	credentials, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read credentials file: %w", ErrConnectivity, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials,
		admin.AdminDirectoryUserReadonlyScope,
		admin.AdminDirectoryGroupReadonlyScope,
		admin.AdminDirectoryGroupMemberReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse credentials: %w", ErrConnectivity, err)
	}

	jwtConfig.Subject = cfg.Subject

	service, err := admin.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create directory service: %w", ErrConnectivity, err)
	}

	return &sdkAPI{service: service}, nil
}
