package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-trading/app/dto/http"
	"github.com/vibast-solutions/ms-go-trading/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	req, err := httpdto.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create order request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Create order validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	order, err := c.orderService.CreateOrder(ctx.Request().Context(), req.ProductID, req.BuyerID)
	if err != nil {
		if errors.Is(err, service.ErrOrderReferenceNotFound) {
			logrus.WithFields(logrus.Fields{
				"product_id": req.ProductID,
				"buyer_id":   req.BuyerID,
			}).Warn("Create order failed: product or buyer not found")
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "product or buyer not found"})
		}
		logrus.WithError(err).Error("Create order failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"product_id": order.ProductID,
		"buyer_id":   order.BuyerID,
	}).Info("Order created")

	return ctx.JSON(http.StatusCreated, httpdto.NewOrderResponse(order))
}

func (c *OrderController) ListOrders(ctx echo.Context) error {
	orders, err := c.orderService.ListOrders(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List orders failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, httpdto.NewOrderListResponse(orders))
}
