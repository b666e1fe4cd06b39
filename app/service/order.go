package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-trading/app/entity"
	"github.com/vibast-solutions/ms-go-trading/app/repository"
)

var ErrOrderReferenceNotFound = errors.New("product or buyer not found")

type orderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]*entity.Order, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, productID, buyerID uint64) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
}

type orderService struct {
	orderRepo orderRepository
}

func NewOrderService(orderRepo orderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) CreateOrder(ctx context.Context, productID, buyerID uint64) (*entity.Order, error) {
	order := &entity.Order{
		ProductID: productID,
		BuyerID:   buyerID,
		OrderedAt: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Referential integrity is enforced by the storage layer; surface a
		// typed error instead of the raw constraint failure.
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrOrderReferenceNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.orderRepo.List(ctx)
}
