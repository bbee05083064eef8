// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/profile": {
            "get": {
                "tags": ["profile"],
                "summary": "Get profile",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["profile"],
                "summary": "Update profile",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/products": {
            "get": {
                "tags": ["catalog"],
                "summary": "List products",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart": {
            "get": {
                "tags": ["cart"],
                "summary": "View cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart/items": {
            "post": {
                "tags": ["cart"],
                "summary": "Add product to cart",
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}
            }
        },
        "/cart/items/{index}": {
            "delete": {
                "tags": ["cart"],
                "summary": "Remove cart line item",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/cart/clear": {
            "post": {
                "tags": ["cart"],
                "summary": "Clear cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders": {
            "get": {
                "tags": ["orders"],
                "summary": "List own orders",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["orders"],
                "summary": "Place order",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/products": {
            "post": {
                "tags": ["admin"],
                "summary": "Add product",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/admin/products/{id}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Delete product",
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/orders": {
            "get": {
                "tags": ["admin"],
                "summary": "List all orders",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/orders/{id}/status": {
            "put": {
                "tags": ["admin"],
                "summary": "Update order status",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catering System API",
	Description:      "Storefront API: catalog browsing, session carts, order placement and admin management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
