// Package docs holds the Swagger document served at /swagger/*any.
// Keep it in step with the @-annotations on the handlers.
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
        "/": {
            "get": {
                "description": "HTML page showing both relays; it follows /ws and posts toggles.",
                "produces": ["text/html"],
                "tags": ["system"],
                "summary": "Dashboard",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/relays/state": {
            "get": {
                "description": "Last confirmed relay state plus the connectivity flag.",
                "produces": ["application/json"],
                "tags": ["relays"],
                "summary": "Get relay state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/view.State"}}
                }
            }
        },
        "/api/v1/relays/{id}/toggle": {
            "post": {
                "description": "Sends the opposite of the relay's current state, then refreshes.",
                "produces": ["application/json"],
                "tags": ["relays"],
                "summary": "Toggle relay",
                "parameters": [
                    {"type": "integer", "description": "Relay id (1 or 2)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "status, relay, action, state", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/relays/{id}/command": {
            "post": {
                "description": "Sends an explicit ON, OFF or RESET, then refreshes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["relays"],
                "summary": "Send relay command",
                "parameters": [
                    {"type": "integer", "description": "Relay id (1 or 2)", "name": "id", "in": "path", "required": true},
                    {"description": "Command payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CommandRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CommandRequest": {
            "type": "object",
            "properties": {
                "action": {"description": "Action to send. Allowed: ON, OFF, RESET", "type": "string", "example": "ON"}
            }
        },
        "models.DeviceInfo": {
            "type": "object",
            "properties": {
                "device_id": {"type": "string"},
                "wifi_connected": {"type": "boolean"},
                "wifi_rssi": {"type": "integer"}
            }
        },
        "view.Relay": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "active": {"type": "boolean"},
                "remaining_seconds": {"type": "integer"},
                "remaining": {"type": "string", "example": "02:05"},
                "progress": {"type": "number", "example": 5.2},
                "next_action": {"type": "string", "example": "OFF"}
            }
        },
        "view.State": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "connectivity": {"type": "string", "enum": ["UNKNOWN", "CONNECTED", "DISCONNECTED"]},
                "device": {"$ref": "#/definitions/models.DeviceInfo"},
                "updated_at": {"type": "string"},
                "relays": {"type": "array", "items": {"$ref": "#/definitions/view.Relay"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Relay Control API",
	Description:      "Dashboard API for a two-relay ESP32 timer controller.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
