// Package devices is the console's device-registry collection: RFID
// readers, weigh bridges, and GPS trackers registered against a gaushala.
package devices

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DeviceKind enumerates the hardware the registry tracks.
type DeviceKind string

const (
	KindRFIDReader  DeviceKind = "RFID_READER"
	KindWeighBridge DeviceKind = "WEIGH_BRIDGE"
	KindGPSTracker  DeviceKind = "GPS_TRACKER"
)

func validKind(kind DeviceKind) bool {
	switch kind {
	case KindRFIDReader, KindWeighBridge, KindGPSTracker:
		return true
	}
	return false
}

// Device is one registry row.
type Device struct {
	ID         string     `json:"id"`
	Serial     string     `json:"serial"`
	Kind       DeviceKind `json:"kind"`
	GaushalaID int64      `json:"gaushala_id"`
	VehicleID  *string    `json:"vehicle_id,omitempty"` // set for trackers mounted on a transport vehicle
	Active     bool       `json:"active"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// CreatePayload is the shape the register-device form submits. The gaushala
// scope is required: a device with no facility is an error, never defaulted.
type CreatePayload struct {
	Serial     string     `json:"serial"`
	Kind       DeviceKind `json:"kind"`
	GaushalaID *int64     `json:"gaushala_id"`
}

func (p CreatePayload) Validate() error {
	if strings.TrimSpace(p.Serial) == "" {
		return errors.New("[Validate] serial is required")
	}
	if !validKind(p.Kind) {
		return errors.Errorf("[Validate] unknown device kind %q", p.Kind)
	}
	if p.GaushalaID == nil {
		return errors.New("[Validate] gaushala id is required")
	}
	return nil
}
