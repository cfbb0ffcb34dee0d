package asapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ProductSpec describes a Product to create in a Unit. Allowance, Limit
// and Flavour are optional and omitted from the request when zero.
type ProductSpec struct {
	Name      string
	UnitID    string
	Type      string
	Allowance int
	Limit     int
	Flavour   string
}

// CreateProduct creates a Product in a Unit. The product type is a server
// identity such as "DATA_MANAGER_PROJECT_TIER_SUBSCRIPTION".
func (c *Client) CreateProduct(ctx context.Context, token string, spec ProductSpec) Result {
	if spec.Name == "" || spec.UnitID == "" || spec.Type == "" {
		return failure("Failed to create product (name, unit ID and type are required)")
	}

	body := map[string]interface{}{
		"name": spec.Name,
		"type": spec.Type,
	}
	if spec.Flavour != "" {
		body["flavour"] = spec.Flavour
	}
	if spec.Allowance > 0 {
		body["allowance"] = spec.Allowance
	}
	if spec.Limit > 0 {
		body["limit"] = spec.Limit
	}

	c.logger.Info("Creating product",
		zap.String("name", spec.Name),
		zap.String("unit_id", spec.UnitID),
		zap.String("type", spec.Type))

	return c.request(ctx, requestSpec{
		method:        http.MethodPost,
		path:          "/product/unit/" + spec.UnitID,
		token:         token,
		body:          body,
		expectedCodes: []int{http.StatusCreated},
		errorMessage:  "Failed to create product",
	})
}

// GetProduct returns details for a given Product.
func (c *Client) GetProduct(ctx context.Context, token, productID string) Result {
	if productID == "" {
		return failure("Failed getting product (no product ID)")
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/product/" + productID,
		token:        token,
		errorMessage: "Failed getting product",
	})
}

// GetAvailableProducts returns the Products you have access to.
func (c *Client) GetAvailableProducts(ctx context.Context, token string) Result {
	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/product",
		token:        token,
		errorMessage: "Failed getting products",
	})
}

// GetProductsForUnit returns the Products in a given Unit.
func (c *Client) GetProductsForUnit(ctx context.Context, token, unitID string) Result {
	if unitID == "" {
		return failure("Failed getting products (no unit ID)")
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/product/unit/" + unitID,
		token:        token,
		errorMessage: "Failed getting products",
	})
}

// GetProductsForOrganisation returns the Products in a given Organisation.
func (c *Client) GetProductsForOrganisation(ctx context.Context, token, orgID string) Result {
	if orgID == "" {
		return failure("Failed getting products (no organisation ID)")
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/product/organisation/" + orgID,
		token:        token,
		errorMessage: "Failed getting products",
	})
}

// GetProductCharges returns charges for a given Product. When from and
// until are zero the current billing period is used. Admin rights on the
// Account Server are required.
func (c *Client) GetProductCharges(ctx context.Context, token, productID string, from, until time.Time) Result {
	if productID == "" {
		return failure("Failed getting product charges (no product ID)")
	}

	queryParams := map[string]string{}
	if !from.IsZero() {
		queryParams["from"] = from.Format(time.DateOnly)
	}
	if !until.IsZero() {
		queryParams["until"] = until.Format(time.DateOnly)
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/product/" + productID + "/charges",
		token:        token,
		queryParams:  queryParams,
		errorMessage: "Failed getting product charges",
	})
}

// DeleteProduct deletes a Product from a Unit.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) Result {
	if productID == "" {
		return failure("Failed to delete product (no product ID)")
	}

	c.logger.Info("Deleting product", zap.String("product_id", productID))

	return c.request(ctx, requestSpec{
		method:        http.MethodDelete,
		path:          "/product/" + productID,
		token:         token,
		expectedCodes: []int{http.StatusNoContent},
		errorMessage:  "Failed to delete product",
	})
}

// GetAvailableAssets returns Assets you have access to. A scope ID - a
// username or a product, unit or org UUID - limits the results to that
// scope.
func (c *Client) GetAvailableAssets(ctx context.Context, token, scopeID string) Result {
	queryParams := map[string]string{}
	if scopeID != "" {
		scope := "user_id"
		if reUUID.MatchString(scopeID) {
			switch {
			case strings.HasPrefix(scopeID, "product-"):
				scope = "product_id"
			case strings.HasPrefix(scopeID, "unit-"):
				scope = "unit_id"
			case strings.HasPrefix(scopeID, "org-"):
				scope = "org_id"
			default:
				return failure("Failed getting assets (unsupported scope ID %q)", scopeID)
			}
		}
		queryParams[scope] = scopeID
	}

	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/asset",
		token:        token,
		queryParams:  queryParams,
		errorMessage: "Failed getting assets",
	})
}

// GetMerchants returns the Merchants registered with the Account Server.
func (c *Client) GetMerchants(ctx context.Context, token string) Result {
	return c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/merchant",
		token:        token,
		errorMessage: "Failed getting merchants",
	})
}
