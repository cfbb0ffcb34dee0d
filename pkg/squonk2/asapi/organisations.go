package asapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// CreateOrganisation creates an Organisation with a name and an owner.
// Admin privileges are required.
func (c *Client) CreateOrganisation(ctx context.Context, token, orgName, orgOwner string) Result {
	if orgName == "" || orgOwner == "" {
		return failure("Failed to create organisation (name and owner are required)")
	}

	c.logger.Info("Creating organisation", zap.String("name", orgName), zap.String("owner", orgOwner))

	return c.request(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/organisation",
		token:  token,
		body: map[string]interface{}{
			"name":  orgName,
			"owner": orgOwner,
		},
		expectedCodes: []int{http.StatusCreated},
		errorMessage:  "Failed to create organisation",
	})
}

// GetOrganisation gets an Organisation. You need to be a member of the
// Organisation.
func (c *Client) GetOrganisation(ctx context.Context, token, orgID string) Result {
	if orgID == "" {
		return failure("Failed to get organisation (no organisation ID)")
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/organisation/" + orgID,
		token:        token,
		errorMessage: "Failed to get organisation",
	})
}

// GetOrganisations gets all the Organisations you can see.
func (c *Client) GetOrganisations(ctx context.Context, token string) Result {
	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/organisation",
		token:        token,
		errorMessage: "Failed to get organisations",
	})
}

// CreateUnit creates a Unit in an Organisation. The billing day is a day
// in the month (1..28) to bill the Unit's subscription-based products.
func (c *Client) CreateUnit(ctx context.Context, token, unitName, orgID string, billingDay int) Result {
	if unitName == "" || orgID == "" {
		return failure("Failed to create unit (name and organisation ID are required)")
	}
	if billingDay < 1 || billingDay > 28 {
		return failure("Failed to create unit (billing day must be 1..28)")
	}

	c.logger.Info("Creating unit",
		zap.String("name", unitName),
		zap.String("org_id", orgID),
		zap.Int("billing_day", billingDay))

	return c.request(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/organisation/" + orgID + "/unit",
		token:  token,
		body: map[string]interface{}{
			"name":        unitName,
			"billing_day": billingDay,
		},
		expectedCodes: []int{http.StatusCreated},
		errorMessage:  "Failed to create unit",
	})
}

// GetUnit gets a Unit.
func (c *Client) GetUnit(ctx context.Context, token, unitID string) Result {
	if unitID == "" {
		return failure("Failed to get unit (no unit ID)")
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/unit/" + unitID,
		token:        token,
		errorMessage: "Failed to get unit",
	})
}

// GetUnits gets the Units in an Organisation.
func (c *Client) GetUnits(ctx context.Context, token, orgID string) Result {
	if orgID == "" {
		return failure("Failed to get organisation units (no organisation ID)")
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/organisation/" + orgID + "/unit",
		token:        token,
		errorMessage: "Failed to get organisation units",
	})
}

// GetAvailableUnits gets the Units (and their Organisations) you have
// access to.
func (c *Client) GetAvailableUnits(ctx context.Context, token string) Result {
	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/unit",
		token:        token,
		errorMessage: "Failed getting units",
	})
}

// DeleteUnit deletes a Unit.
func (c *Client) DeleteUnit(ctx context.Context, token, unitID string) Result {
	if unitID == "" {
		return failure("Failed to delete unit (no unit ID)")
	}

	c.logger.Info("Deleting unit", zap.String("unit_id", unitID))

	return c.request(ctx, requestSpec{
		method:        http.MethodDelete,
		path:          "/unit/" + unitID,
		token:         token,
		expectedCodes: []int{http.StatusNoContent},
		errorMessage:  "Failed to delete unit",
	})
}
