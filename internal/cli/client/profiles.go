package client

import (
	"context"
	"net/http"
)

// MyProfile returns the profile matching the current user's role
func (c *Client) MyProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.Call(ctx, Request{Method: http.MethodGet, Path: "/api/profiles/me"}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveCustomerProfile creates or updates the customer profile
func (c *Client) SaveCustomerProfile(ctx context.Context, in CustomerProfileInput) (*CustomerProfile, error) {
	var profile CustomerProfile
	req := Request{Method: http.MethodPost, Path: "/api/profiles/customer", Body: in}
	if err := c.Call(ctx, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SavePrinterProfile creates or updates the printer profile
func (c *Client) SavePrinterProfile(ctx context.Context, in PrinterProfileInput) (*PrinterProfile, error) {
	if err := validateRequest(in); err != nil {
		return nil, err
	}
	if in.MinQuantity != nil && in.MaxQuantity != nil && *in.MaxQuantity < *in.MinQuantity {
		return nil, validationError("max_quantity must be greater than or equal to min_quantity")
	}

	var profile PrinterProfile
	req := Request{Method: http.MethodPost, Path: "/api/profiles/printer", Body: in}
	if err := c.Call(ctx, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
