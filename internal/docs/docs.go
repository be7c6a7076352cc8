// Package docs registers the OpenAPI document for the fault routes with swag.
// Keep it in step with the @-annotations on the handlers; the route list is
// checked by the router tests.
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
        "/db/conexion-fallida": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Database"],
                "description": "Dials the configured bad host. Always expected to fail with 504.",
                "summary": "Connect to an unreachable database host",
                "operationId": "connectionFailed",
                "responses": {
                    "200": {"description": "Connection unexpectedly succeeded", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "500": {"description": "Unexpected error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "504": {"description": "Connection failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/db/listado-usuarios": {
            "get": {
                "description": "Runs SELECT * FROM users over a fresh connection.",
                "produces": ["application/json"],
                "tags": ["Database"],
                "summary": "List users",
                "operationId": "listUsers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}},
                    "500": {"description": "Database failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/db/tabla-inexistente": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Database"],
                "summary": "Query a table that does not exist",
                "operationId": "missingTable",
                "responses": {
                    "200": {"description": "Table unexpectedly exists", "schema": {"type": "array", "items": {"type": "object", "additionalProperties": true}}},
                    "404": {"description": "Table not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Unexpected error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/db/valores-duplicados": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Database"],
                "summary": "Insert a duplicate primary key",
                "operationId": "duplicateValues",
                "responses": {
                    "201": {"description": "Insert unexpectedly succeeded", "schema": {"$ref": "#/definitions/domain.InsertResult"}},
                    "409": {"description": "Duplicate value", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Unexpected error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/db/valores-nulos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Database"],
                "summary": "Insert NULL into NOT NULL columns",
                "operationId": "nullValues",
                "responses": {
                    "201": {"description": "Insert unexpectedly succeeded", "schema": {"$ref": "#/definitions/domain.InsertResult"}},
                    "400": {"description": "Null value not allowed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Unexpected error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/externa/archivo/correcto": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Read a valid local file",
                "operationId": "readableFile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.FileContent"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "File read failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/externa/archivo/inexistente": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Read a missing local file",
                "operationId": "missingFile",
                "responses": {
                    "200": {"description": "File unexpectedly exists", "schema": {"$ref": "#/definitions/domain.FileContent"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/externa/archivo/restringido": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Read a restricted local file",
                "operationId": "restrictedFile",
                "responses": {
                    "200": {"description": "File unexpectedly readable", "schema": {"$ref": "#/definitions/domain.FileContent"}},
                    "500": {"description": "File read failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/externa/recurso-existente": {
            "get": {
                "description": "Returns name, capital and flag of Spain from the country API.",
                "produces": ["application/json"],
                "tags": ["External"],
                "summary": "Fetch a known country",
                "operationId": "existingCountry",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Country"}},
                    "504": {"description": "External API failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/externa/recurso-inexistente": {
            "get": {
                "produces": ["application/json"],
                "tags": ["External"],
                "summary": "Fetch an unknown country",
                "operationId": "missingCountry",
                "responses": {
                    "200": {"description": "Country unexpectedly exists", "schema": {"$ref": "#/definitions/domain.Country"}},
                    "404": {"description": "External API failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/externa/solicitud-erronea": {
            "get": {
                "produces": ["application/json"],
                "tags": ["External"],
                "summary": "Send a malformed query to the country API",
                "operationId": "malformedRequest",
                "responses": {
                    "200": {"description": "Request unexpectedly accepted", "schema": {"$ref": "#/definitions/domain.Country"}},
                    "400": {"description": "External API failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Country": {
            "type": "object",
            "properties": {
                "bandera": {"type": "string", "example": "https://flagcdn.com/w320/es.png"},
                "capital": {"type": "string", "example": "Madrid"},
                "nombre": {"type": "string", "example": "Spain"}
            }
        },
        "domain.FileContent": {
            "type": "object",
            "properties": {
                "contenido": {"type": "string", "example": "Contenido de prueba"},
                "mensaje": {"type": "string", "example": "correcto.txt"}
            }
        },
        "domain.InsertResult": {
            "type": "object",
            "properties": {
                "mensaje": {"type": "string", "example": "usuario insertado"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "detalle": {"type": "string", "example": "Error 1062 (23000): Duplicate entry '1' for key 'users.PRIMARY'"},
                "error": {"type": "string", "example": "duplicate value"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "mensaje": {"type": "string", "example": "conexion establecida"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Go Fault Demo API",
	Description:      "Routes that deliberately trigger database, external API and file failures and report them as JSON.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
