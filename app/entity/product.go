package entity

import (
	"database/sql"
	"time"
)

type Product struct {
	ID          uint64
	Name        string
	Price       float64
	Description string
	SellerID    sql.NullInt64
	CreatedAt   time.Time
}
