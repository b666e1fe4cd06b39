package http

import (
	"time"

	"github.com/vibast-solutions/ms-go-trading/app/entity"
)

// UserResponse is the public view of a user: the password hash is never
// serialized.
type UserResponse struct {
	ID      uint64 `json:"id"`
	Account string `json:"account"`
	Email   string `json:"email"`
}

func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:      user.ID,
		Account: user.Account,
		Email:   user.Email,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProductResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	SellerID    *uint64 `json:"seller_id,omitempty"`
}

func NewProductResponse(product *entity.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
	}
	if product.SellerID.Valid {
		sellerID := uint64(product.SellerID.Int64)
		resp.SellerID = &sellerID
	}
	return resp
}

func NewProductListResponse(products []*entity.Product) []*ProductResponse {
	resp := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, NewProductResponse(product))
	}
	return resp
}

type OrderResponse struct {
	ID        uint64    `json:"id"`
	ProductID uint64    `json:"product_id"`
	BuyerID   uint64    `json:"buyer_id"`
	OrderedAt time.Time `json:"ordered_at"`
}

func NewOrderResponse(order *entity.Order) *OrderResponse {
	return &OrderResponse{
		ID:        order.ID,
		ProductID: order.ProductID,
		BuyerID:   order.BuyerID,
		OrderedAt: order.OrderedAt,
	}
}

func NewOrderListResponse(orders []*entity.Order) []*OrderResponse {
	resp := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, NewOrderResponse(order))
	}
	return resp
}

type ErrorResponse struct {
	Error string `json:"error"`
}
