package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrSyr3x/catering-system/internal/httpx"
	"github.com/MrSyr3x/catering-system/internal/order"
	"github.com/MrSyr3x/catering-system/internal/view"
)

// submitOrderHandler freezes the session cart into a new order.
// @Summary  Place order
// @Tags     orders
// @Security BearerAuth
// @Produce  json
// @Success  201 {object} order.SubmitResponse
// @Failure  400 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Failure  502 {object} httpx.HTTPError
// @Router   /orders [post]
func submitOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		o, err := svc.Submit(c.Request.Context(), sess)
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			httpx.Err(c, http.StatusBadRequest, order.ErrEmptyCart.Error())
		case errors.Is(err, order.ErrSubmitInFlight):
			httpx.Err(c, http.StatusConflict, order.ErrSubmitInFlight.Error())
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.JSON(http.StatusCreated, order.SubmitResponse{
				OrderID:      o.ID,
				ShortOrderID: order.ShortID(o.ID),
				Total:        o.Total.String(),
			})
		}
	}
}

// listMyOrdersHandler returns the signed-in user's order history.
// @Summary  List own orders
// @Tags     orders
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} map[string][]order.Order
// @Router   /orders [get]
func listMyOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := httpx.CurrentSession(c)
		orders, err := svc.ListByUser(c.Request.Context(), sess.UserID)
		if err != nil {
			httpx.Err(c, http.StatusBadGateway, "store error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// listAllOrdersHandler returns every order. Admin only.
// @Summary  List all orders
// @Tags     admin
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} map[string][]order.Order
// @Router   /admin/orders [get]
func listAllOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			httpx.Err(c, http.StatusBadGateway, "store error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// updateOrderStatusHandler moves an order to a new status. Admin only.
// @Summary  Update order status
// @Tags     admin
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id path string true "order id"
// @Param    body body order.UpdateStatusRequest true "target status"
// @Success  200 {object} order.UpdateStatusRequest
// @Failure  400 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /admin/orders/{id}/status [put]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Err(c, http.StatusBadRequest, "invalid json")
			return
		}
		err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		switch {
		case errors.Is(err, order.ErrUnknownStatus):
			httpx.Err(c, http.StatusBadRequest, order.ErrUnknownStatus.Error())
		case errors.Is(err, order.ErrNotFound):
			httpx.Err(c, http.StatusNotFound, "order not found")
		case err != nil:
			httpx.Err(c, http.StatusBadGateway, "store error")
		default:
			c.JSON(http.StatusOK, req)
		}
	}
}

// eventsHandler streams refresh signals and notices to the frontend as
// server-sent events.
// @Summary  Subscribe to UI events
// @Tags     events
// @Security BearerAuth
// @Produce  text/event-stream
// @Router   /events [get]
func eventsHandler(hub *view.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := hub.Subscribe()
		defer cancel()

		c.Writer.Header().Set("Cache-Control", "no-store")
		c.Stream(func(w io.Writer) bool {
			select {
			case e, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent(e.Type, e)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
