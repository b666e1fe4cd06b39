package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-trading/app/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (product_id, buyer_id, ordered_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		order.ProductID,
		order.BuyerID,
		order.OrderedAt,
	)
	if err != nil {
		return translateMySQLError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = uint64(id)
	return nil
}

// List returns all orders in creation order.
func (r *OrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT id, product_id, buyer_id, ordered_at
		FROM orders ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order := &entity.Order{}
		if err := rows.Scan(
			&order.ID,
			&order.ProductID,
			&order.BuyerID,
			&order.OrderedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
