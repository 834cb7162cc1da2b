// Package workspace wraps the Google Workspace APIs the watcher polls:
// Admin Directory for the group inventory and Groups Settings for the
// per-group settings objects.
package workspace

import (
	"context"
	"fmt"

	admin "google.golang.org/api/admin/directory/v1"
)

// Group is one mailing list from the directory inventory.
type Group struct {
	ID    string
	Email string
	Name  string
}

// Directory lists the groups to watch. The listing order is the stable order
// the rest of the run reports in.
type Directory interface {
	ListGroups(ctx context.Context) ([]Group, error)
}

// AdminDirectory pages through the Admin SDK Directory API for one customer.
type AdminDirectory struct {
	svc      *admin.Service
	customer string
}

func NewAdminDirectory(svc *admin.Service, customer string) *AdminDirectory {
	if customer == "" {
		customer = "my_customer"
	}
	return &AdminDirectory{svc: svc, customer: customer}
}

func (d *AdminDirectory) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []Group
	var pageToken string

	// Call the API until all groups are read. Loop for pagination.
	for {
		page, err := d.svc.Groups.List().
			Context(ctx).
			Customer(d.customer).
			MaxResults(200).
			PageToken(pageToken).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list groups: %w", err)
		}

		for _, g := range page.Groups {
			groups = append(groups, Group{ID: g.Id, Email: g.Email, Name: g.Name})
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return groups, nil
}
