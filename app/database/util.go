package database

import (
	"database/sql/driver"

	"github.com/lib/pq"
)

// idArray wraps a slice of ids for use as a single array parameter. Queries
// cast the parameter with ::uuid[] on the SQL side.
func idArray(ids []string) driver.Valuer {
	return pq.Array(ids)
}
