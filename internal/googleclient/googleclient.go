package googleclient

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/groupssettings/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// jwtClient builds an HTTP client authorized with the service account key,
// impersonating the configured admin user (domain-wide delegation).
func jwtClient(ctx context.Context, scopes ...string) (*http.Client, error) {
	credsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credsPath == "" {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS env var not set")
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account JSON: %w", err)
	}

	impersonateUser := os.Getenv("GOOGLE_IMPERSONATE_USER")
	if impersonateUser == "" {
		return nil, fmt.Errorf("GOOGLE_IMPERSONATE_USER env var not set")
	}

	config, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	config.Subject = impersonateUser

	return config.Client(ctx), nil
}

func NewDirectoryService(ctx context.Context) (*admin.Service, error) {
	client, err := jwtClient(ctx, admin.AdminDirectoryGroupReadonlyScope)
	if err != nil {
		return nil, err
	}

	return admin.NewService(ctx, option.WithHTTPClient(client))
}

func NewGroupsSettingsService(ctx context.Context) (*groupssettings.Service, error) {
	client, err := jwtClient(ctx, groupssettings.AppsGroupsSettingsScope)
	if err != nil {
		return nil, err
	}

	return groupssettings.NewService(ctx, option.WithHTTPClient(client))
}

func NewSheetsService(ctx context.Context) (*sheets.Service, error) {
	client, err := jwtClient(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}

	return sheets.NewService(ctx, option.WithHTTPClient(client))
}
