// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("jsonb: unsupported scan source")
	}

	return json.Unmarshal(bytes, j)
}

// ToJSONB round-trips any JSON-serialisable value into a JSONB map.
func ToJSONB(v interface{}) (JSONB, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out JSONB
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode unmarshals the map into dst.
func (j JSONB) Decode(dst interface{}) error {
	raw, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Storage keys used by the storefront client.
const (
	CartStorageKey         = "styleHubCart"
	LastOrderStorageKey    = "lastOrder"
	// PendingOrderStorageKey holds a submitted order until the cart is
	// cleared, so a retry resends the same order id.
	PendingOrderStorageKey = "pendingOrder"
)

// DefaultSize is recorded for products added without a size selection.
const DefaultSize = "N/A"
