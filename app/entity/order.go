package entity

import "time"

type Order struct {
	ID        uint64
	ProductID uint64
	BuyerID   uint64
	OrderedAt time.Time
}
