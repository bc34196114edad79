package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/t2bot/stream-metadata-backup/types"
)

type PartitionsJson map[int][]types.Partition

// Value implements driver.Valuer
func (p PartitionsJson) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *PartitionsJson) Scan(value interface{}) error {
	if b, ok := value.([]byte); !ok {
		return errors.New("failed to assert jsonb is bytes")
	} else {
		return json.Unmarshal(b, p)
	}
}
