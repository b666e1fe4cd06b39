package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-trading/app/dto/http"
	"github.com/vibast-solutions/ms-go-trading/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func (c *CatalogController) CreateProduct(ctx echo.Context) error {
	req, err := httpdto.NewCreateProductRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create product request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Create product validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	product, err := c.catalogService.CreateProduct(ctx.Request().Context(), req.Name, req.Price, req.Description, req.SellerID)
	if err != nil {
		logrus.WithError(err).WithField("name", req.Name).Error("Create product failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")

	return ctx.JSON(http.StatusCreated, httpdto.NewProductResponse(product))
}

func (c *CatalogController) ListProducts(ctx echo.Context) error {
	products, err := c.catalogService.ListProducts(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List products failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, httpdto.NewProductListResponse(products))
}
