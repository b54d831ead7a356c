package users

import (
	"context"

	"github.com/jrsteele09/go-console-core/client"
	"github.com/jrsteele09/go-console-core/listing"
)

const basePath = "/admin/users"

// Collection binds the users endpoint to a list controller plus the row
// mutations the user-management screen performs. Every mutation refreshes
// the current page on success; a validation failure is surfaced without
// touching the backend.
type Collection struct {
	api        *client.Client
	Controller *listing.Controller[User]
}

func NewCollection(api *client.Client, pageSize int, options ...listing.Option[User]) *Collection {
	return &Collection{
		api: api,
		Controller: listing.New(
			client.FetchPage[User](api, basePath),
			listing.QueryState{PageSize: pageSize},
			options...,
		),
	}
}

func (c *Collection) Create(ctx context.Context, payload CreatePayload) *listing.ErrorInfo {
	if err := payload.Validate(); err != nil {
		return &listing.ErrorInfo{Message: err.Error(), Kind: listing.KindValidation}
	}
	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.PostJSON(ctx, basePath, payload)
	})
}

func (c *Collection) Update(ctx context.Context, id string, payload UpdatePayload) *listing.ErrorInfo {
	if err := payload.Validate(); err != nil {
		return &listing.ErrorInfo{Message: err.Error(), Kind: listing.KindValidation}
	}
	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.PutJSON(ctx, basePath+"/"+id, payload)
	})
}

func (c *Collection) Delete(ctx context.Context, id string) *listing.ErrorInfo {
	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.Delete(ctx, basePath+"/"+id)
	})
}

// SetActive toggles a row's active flag.
func (c *Collection) SetActive(ctx context.Context, id string, active bool) *listing.ErrorInfo {
	body := struct {
		Active bool `json:"active"`
	}{Active: active}

	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.PostJSON(ctx, basePath+"/"+id+"/active", body)
	})
}
