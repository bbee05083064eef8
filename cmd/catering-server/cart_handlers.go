package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MrSyr3x/catering-system/internal/cart"
	"github.com/MrSyr3x/catering-system/internal/catalog"
	"github.com/MrSyr3x/catering-system/internal/httpx"
	"github.com/MrSyr3x/catering-system/internal/store"
	"github.com/MrSyr3x/catering-system/internal/view"
)

// addCartItemRequest names the product to add; name and price are
// snapshotted from the catalog, never taken from the client.
// swagger:model addCartItemRequest
type addCartItemRequest struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
}

type cartResponse struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	return cartResponse{Items: c.Items(), Total: c.Total(), Count: c.Len()}
}

// getCartHandler returns the session cart.
// @Summary  View cart
// @Tags     cart
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} cartResponse
// @Router   /cart [get]
func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		c.JSON(http.StatusOK, toCartResponse(sess.Cart))
	}
}

// addCartItemHandler snapshots a product into the session cart.
// @Summary  Add product to cart
// @Tags     cart
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body addCartItemRequest true "product reference"
// @Success  201 {object} cartResponse
// @Failure  404 {object} httpx.HTTPError
// @Router   /cart/items [post]
func addCartItemHandler(svc *catalog.Service, views view.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			httpx.Err(c, http.StatusBadRequest, "product_id is required")
			return
		}
		p, err := svc.Get(c.Request.Context(), req.ProductID)
		switch {
		case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrMalformed):
			httpx.Err(c, http.StatusNotFound, "product not found")
			return
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
			return
		}
		sess := httpx.CurrentSession(c)
		sess.Cart.Add(p.ID, p.Name, p.Price)
		views.Notice("Product added to cart!", view.Success)
		c.JSON(http.StatusCreated, toCartResponse(sess.Cart))
	}
}

// removeCartItemHandler deletes the line item at a position.
// @Summary  Remove cart line item
// @Tags     cart
// @Security BearerAuth
// @Produce  json
// @Param    index path int true "zero-based position"
// @Success  200 {object} cartResponse
// @Failure  400 {object} httpx.HTTPError
// @Router   /cart/items/{index} [delete]
func removeCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			httpx.Err(c, http.StatusBadRequest, "invalid index")
			return
		}
		sess := httpx.CurrentSession(c)
		if _, err := sess.Cart.RemoveAt(idx); err != nil {
			httpx.Err(c, http.StatusBadRequest, cart.ErrIndexOutOfRange.Error())
			return
		}
		c.JSON(http.StatusOK, toCartResponse(sess.Cart))
	}
}

// clearCartHandler empties the session cart.
// @Summary  Clear cart
// @Tags     cart
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} cartResponse
// @Router   /cart/clear [post]
func clearCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		sess.Cart.Clear()
		c.JSON(http.StatusOK, toCartResponse(sess.Cart))
	}
}
