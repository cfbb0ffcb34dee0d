package dmapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// ProjectSpec describes a project to create. The Account Server identities
// default to the built-in test identities when left empty.
type ProjectSpec struct {
	Name           string
	TierProductID  string
	OrganisationID string
	UnitID         string
}

// CreateProject creates a project using an organisation, unit and product.
func (c *Client) CreateProject(ctx context.Context, token string, spec ProjectSpec) Result {
	if spec.Name == "" {
		return failure("Failed creating project (no project name)")
	}
	if spec.TierProductID == "" {
		spec.TierProductID = TestTierProductID
	}
	if spec.OrganisationID == "" {
		spec.OrganisationID = TestOrganisationID
	}
	if spec.UnitID == "" {
		spec.UnitID = TestUnitID
	}

	c.logger.Info("Creating project", zap.String("name", spec.Name))

	result, _ := c.request(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/project",
		token:  token,
		formData: map[string]string{
			"name":            spec.Name,
			"tier_product_id": spec.TierProductID,
			"organisation_id": spec.OrganisationID,
			"unit_id":         spec.UnitID,
		},
		expectedCodes: []int{http.StatusCreated},
		errorMessage:  "Failed creating project",
		timeout:       defaultTimeout,
	})
	return result
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, token, projectID string) Result {
	if projectID == "" {
		return failure("Failed deleting project (no project ID)")
	}

	c.logger.Info("Deleting project", zap.String("project_id", projectID))

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodDelete,
		path:         "/project/" + projectID,
		token:        token,
		errorMessage: "Failed deleting project",
		timeout:      defaultTimeout,
	})
	return result
}

// GetAvailableProjects gets information about all projects available to you.
func (c *Client) GetAvailableProjects(ctx context.Context, token string) Result {
	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/project",
		token:        token,
		errorMessage: "Failed to get projects",
		timeout:      defaultTimeout,
	})
	return result
}

// GetProject gets detailed information about a specific project.
func (c *Client) GetProject(ctx context.Context, token, projectID string) Result {
	if projectID == "" {
		return failure("Failed to get project (no project ID)")
	}

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/project/" + projectID,
		token:        token,
		errorMessage: "Failed to get project",
		timeout:      defaultTimeout,
	})
	return result
}
