package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MrSyr3x/catering-system/internal/auth"
	"github.com/MrSyr3x/catering-system/internal/catalog"
	"github.com/MrSyr3x/catering-system/internal/httpx"
	"github.com/MrSyr3x/catering-system/internal/order"
	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/view"
)

type services struct {
	auth     *auth.Service
	sessions *session.Manager
	catalog  *catalog.Service
	orders   *order.Service
	hub      *view.Hub
}

func newRouter(corsOrigins []string, s services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(corsOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", registerHandler(s.auth))
	r.POST("/auth/login", loginHandler(s.auth))

	authed := r.Group("/", httpx.RequireSession(s.sessions))
	{
		authed.POST("/auth/logout", logoutHandler(s.auth))
		authed.GET("/profile", getProfileHandler(s.auth))
		authed.PUT("/profile", updateProfileHandler(s.auth))

		authed.GET("/products", listProductsHandler(s.catalog))

		authed.GET("/cart", getCartHandler())
		authed.POST("/cart/items", addCartItemHandler(s.catalog, s.hub))
		authed.DELETE("/cart/items/:index", removeCartItemHandler())
		authed.POST("/cart/clear", clearCartHandler())

		authed.POST("/orders", submitOrderHandler(s.orders))
		authed.GET("/orders", listMyOrdersHandler(s.orders))

		authed.GET("/events", eventsHandler(s.hub))

		admin := authed.Group("/admin", httpx.RequireAdmin())
		{
			admin.POST("/products", addProductHandler(s.catalog))
			admin.DELETE("/products/:id", deleteProductHandler(s.catalog))
			admin.GET("/orders", listAllOrdersHandler(s.orders))
			admin.PUT("/orders/:id/status", updateOrderStatusHandler(s.orders))
		}
	}

	return r
}
