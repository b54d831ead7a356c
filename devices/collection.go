package devices

import (
	"context"

	"github.com/jrsteele09/go-console-core/client"
	"github.com/jrsteele09/go-console-core/listing"
)

const basePath = "/admin/devices"

// Collection binds the device registry endpoint to a list controller plus
// the mutations the registry screen performs.
type Collection struct {
	api        *client.Client
	Controller *listing.Controller[Device]
}

func NewCollection(api *client.Client, pageSize int, options ...listing.Option[Device]) *Collection {
	return &Collection{
		api: api,
		Controller: listing.New(
			client.FetchPage[Device](api, basePath),
			listing.QueryState{PageSize: pageSize},
			options...,
		),
	}
}

func (c *Collection) Register(ctx context.Context, payload CreatePayload) *listing.ErrorInfo {
	if err := payload.Validate(); err != nil {
		return &listing.ErrorInfo{Message: err.Error(), Kind: listing.KindValidation}
	}
	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.PostJSON(ctx, basePath, payload)
	})
}

func (c *Collection) Decommission(ctx context.Context, id string) *listing.ErrorInfo {
	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.Delete(ctx, basePath+"/"+id)
	})
}

// AssignVehicle mounts a tracker on a transport vehicle.
func (c *Collection) AssignVehicle(ctx context.Context, id, vehicleID string) *listing.ErrorInfo {
	body := struct {
		VehicleID string `json:"vehicle_id"`
	}{VehicleID: vehicleID}

	return c.Controller.MutateThenReload(ctx, func(ctx context.Context) *listing.ErrorInfo {
		return c.api.PostJSON(ctx, basePath+"/"+id+"/vehicle", body)
	})
}
