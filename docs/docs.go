// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Detailed health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthCheck"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.HealthCheck"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/orders/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place one order per store from the cart",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "NOT_FOUND"},
                "message": {"type": "string", "example": "Order not found"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "types.HealthCheck": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "UP"},
                "version": {"type": "string"},
                "uptime": {"type": "string"},
                "components": {"type": "object"}
            }
        },
        "types.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "types.AuthResponse": {
            "type": "object",
            "properties": {
                "user": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}}},
                "account_type": {"type": "string", "enum": ["user", "store", "engineer", "admin"]},
                "redirect_url": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Supabase access token as \"Bearer <token>\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Binna API",
	Description:      "Construction marketplace backend: carts, orders, stores, projects and supervisors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
