package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrSyr3x/catering-system/internal/catalog"
	"github.com/MrSyr3x/catering-system/internal/httpx"
	"github.com/MrSyr3x/catering-system/internal/store"
)

// listProductsHandler returns the whole catalog.
// @Summary  List products
// @Tags     catalog
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} map[string][]catalog.Product
// @Router   /products [get]
func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			httpx.Err(c, http.StatusBadGateway, "store error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// addProductHandler creates a product. Admin only.
// @Summary  Add product
// @Tags     admin
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body catalog.CreateProductRequest true "product"
// @Success  201 {object} catalog.Product
// @Failure  400 {object} httpx.HTTPError
// @Router   /admin/products [post]
func addProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Err(c, http.StatusBadRequest, "invalid json")
			return
		}
		sess := httpx.CurrentSession(c)
		p, err := svc.Add(c.Request.Context(), sess.UserID, req)
		switch {
		case errors.Is(err, catalog.ErrInvalidProduct):
			httpx.Err(c, http.StatusBadRequest, err.Error())
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.JSON(http.StatusCreated, p)
		}
	}
}

// deleteProductHandler removes a product. Admin only; the frontend asks
// for confirmation before calling this.
// @Summary  Delete product
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "product id"
// @Success  204
// @Failure  404 {object} httpx.HTTPError
// @Router   /admin/products/{id} [delete]
func deleteProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.Delete(c.Request.Context(), c.Param("id"))
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.Err(c, http.StatusNotFound, "product not found")
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.Status(http.StatusNoContent)
		}
	}
}
