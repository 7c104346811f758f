// Package docs holds the generated Swagger specification.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/documents": {
            "get": {
                "summary": "List documents with filters, pagination and the folder list",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "folder_id", "in": "query", "type": "string"},
                    {"name": "date_from", "in": "query", "type": "string"},
                    {"name": "date_to", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "summary": "Bulk move documents (legacy alias)",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "summary": "Delete one document by id query param",
                "parameters": [{"name": "id", "in": "query", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/documents/upload": {
            "post": {
                "summary": "Upload a document (multipart, field: file)",
                "consumes": ["multipart/form-data"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/documents/{id}/download": {
            "get": {
                "summary": "Issue a presigned download URL",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/documents/move": {
            "post": {
                "summary": "Bulk folder reassignment",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/documents/ocr": {
            "post": {
                "summary": "Queue background text recognition",
                "responses": {"202": {"description": "Accepted"}}
            }
        },
        "/api/admin/stats": {
            "get": {
                "summary": "Dashboard statistics snapshot",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/charts": {
            "get": {
                "summary": "Dashboard chart series",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "days", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
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
	Title:            "DocSafe API",
	Description:      "Document management service with folders, simulated OCR and admin dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
