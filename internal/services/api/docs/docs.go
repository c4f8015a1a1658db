// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/yukbul-api/main.go -o internal/services/api/docs --parseInternal
package docs

import "github.com/swaggo/swag/v2"

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
        "/listings/intake": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "Classify one chat message and admit it when it qualifies",
                "parameters": [
                    {"description": "Message", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.IntakeInput"}}
                ],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.IntakeResult"}}}
            }
        },
        "/listings/search": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "Listings on a route, newest first",
                "parameters": [
                    {"description": "Route", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SearchInput"}}
                ],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.SearchResult"}}}
            }
        },
        "/listings/query": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "Free text route query such as \"istanbuldan ankaraya\"",
                "parameters": [{"type": "string", "description": "Query", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
            }
        },
        "/listings/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "Store size, TTL and recent admission outcomes",
                "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
            }
        },
        "/listings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "One live listing",
                "parameters": [{"type": "string", "description": "Listing id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.Listing"}}}
            }
        },
        "/places/resolve": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Places"],
                "summary": "Expand a place name to its province and districts",
                "parameters": [{"type": "string", "description": "Place name", "name": "name", "in": "query", "required": true}],
                "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
            }
        },
        "/blacklist": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Blacklist"],
                "summary": "Current blacklist entries",
                "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Blacklist"],
                "summary": "Add blacklist entries",
                "parameters": [
                    {"description": "Entries", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.BlacklistInput"}}
                ],
                "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
            }
        },
        "/blacklist/{entry}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Blacklist"],
                "summary": "Remove one blacklist entry",
                "parameters": [{"type": "string", "description": "Entry, path escaped", "name": "entry", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok", "schema": {"type": "object"}}}
            }
        },
        "/meta/health": {
            "get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/ready": {
            "get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Readiness with a ping per configured store", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/version": {
            "get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Build info", "responses": {"200": {"description": "ok"}}}
        },
        "/meta/service": {
            "get": {"produces": ["application/json"], "tags": ["Meta"], "summary": "Process start time and uptime in seconds", "responses": {"200": {"description": "ok"}}}
        }
    },
    "definitions": {
        "domain.IntakeInput": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "id": {"type": "string", "maxLength": 256},
                "text": {"type": "string", "maxLength": 20000},
                "chat_id": {"type": "string", "maxLength": 256},
                "chat_name": {"type": "string", "maxLength": 256},
                "sender": {"type": "string", "maxLength": 128},
                "timestamp": {"type": "integer", "minimum": 0},
                "channel": {"type": "boolean"}
            }
        },
        "domain.IntakeResult": {
            "type": "object",
            "properties": {
                "admitted": {"type": "boolean"},
                "duplicate": {"type": "boolean"},
                "reason": {"type": "string"},
                "id": {"type": "string"},
                "hash": {"type": "integer"},
                "cities": {"type": "array", "items": {"type": "string"}},
                "phones": {"type": "array", "items": {"type": "string"}},
                "augmented": {"type": "boolean"}
            }
        },
        "domain.SearchInput": {
            "type": "object",
            "required": ["origin"],
            "properties": {
                "origin": {"type": "string", "maxLength": 64},
                "destination": {"type": "string", "maxLength": 64},
                "limit": {"type": "integer", "minimum": 0, "maximum": 500}
            }
        },
        "domain.SearchResult": {
            "type": "object",
            "properties": {
                "origin": {"type": "object"},
                "destination": {"type": "object"},
                "total": {"type": "integer"},
                "listings": {"type": "array", "items": {"$ref": "#/definitions/domain.Listing"}}
            }
        },
        "domain.BlacklistInput": {
            "type": "object",
            "required": ["entries"],
            "properties": {
                "entries": {"type": "array", "minItems": 1, "items": {"type": "string", "maxLength": 256}}
            }
        },
        "domain.Listing": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "cities": {"type": "array", "items": {"type": "string"}},
                "line_pairs": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}},
                "chat_id": {"type": "string"},
                "chat_name": {"type": "string"},
                "sender": {"type": "string"},
                "timestamp": {"type": "integer"},
                "hash": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Yukbul API",
	Description:      "Freight listings parsed from chat groups, searchable by route.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
