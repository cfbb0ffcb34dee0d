package asapi

import (
	"context"
	"time"
)

// AccountServerClient defines the interface for Account Server API operations
type AccountServerClient interface {
	// Ping ensures the server is responding
	Ping(ctx context.Context) Result

	// GetVersion returns the AS-API service version
	GetVersion(ctx context.Context) Result

	// CreateOrganisation creates an Organisation
	CreateOrganisation(ctx context.Context, token, orgName, orgOwner string) Result

	// GetOrganisation gets an Organisation
	GetOrganisation(ctx context.Context, token, orgID string) Result

	// GetOrganisations gets all the Organisations you can see
	GetOrganisations(ctx context.Context, token string) Result

	// CreateUnit creates a Unit in an Organisation
	CreateUnit(ctx context.Context, token, unitName, orgID string, billingDay int) Result

	// GetUnit gets a Unit
	GetUnit(ctx context.Context, token, unitID string) Result

	// GetUnits gets the Units in an Organisation
	GetUnits(ctx context.Context, token, orgID string) Result

	// GetAvailableUnits gets the Units you have access to
	GetAvailableUnits(ctx context.Context, token string) Result

	// DeleteUnit deletes a Unit
	DeleteUnit(ctx context.Context, token, unitID string) Result

	// CreateProduct creates a Product in a Unit
	CreateProduct(ctx context.Context, token string, spec ProductSpec) Result

	// GetProduct returns details for a given Product
	GetProduct(ctx context.Context, token, productID string) Result

	// GetAvailableProducts returns the Products you have access to
	GetAvailableProducts(ctx context.Context, token string) Result

	// GetProductsForUnit returns the Products in a given Unit
	GetProductsForUnit(ctx context.Context, token, unitID string) Result

	// GetProductsForOrganisation returns the Products in a given Organisation
	GetProductsForOrganisation(ctx context.Context, token, orgID string) Result

	// GetProductCharges returns charges for a given Product
	GetProductCharges(ctx context.Context, token, productID string, from, until time.Time) Result

	// DeleteProduct deletes a Product from a Unit
	DeleteProduct(ctx context.Context, token, productID string) Result

	// GetAvailableAssets returns Assets you have access to
	GetAvailableAssets(ctx context.Context, token, scopeID string) Result

	// GetMerchants returns the Merchants registered with the Account Server
	GetMerchants(ctx context.Context, token string) Result
}

var _ AccountServerClient = (*Client)(nil)
