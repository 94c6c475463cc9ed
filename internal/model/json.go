package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Strings is a string slice stored as a jsonb column.
type Strings []string

func (s Strings) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *Strings) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Uints is a uint slice stored as a jsonb column.
type Uints []uint

func (u Uints) Value() (driver.Value, error) {
	if u == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(u)
}

func (u *Uints) Scan(value interface{}) error {
	return scanJSON(value, u)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
