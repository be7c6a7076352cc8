// Package handlers provides the HTTP handlers of the fault-demo API.
//
// This file defines the response helpers shared by every endpoint. All
// failures use the same envelope:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "error": "table tabla_inexistente not found",
//	  "detalle": "SQL logic error: no such table: tabla_inexistente (1)"
//	}
//
// detalle carries the underlying error text when there is one and is omitted
// otherwise. Successful responses are plain JSON documents or arrays.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-fault-demo/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Stable, human-readable summary of the failure.
	Error string `json:"error" example:"duplicate value"`
	// Diagnostic text of the underlying cause, when available.
	Detalle string `json:"detalle,omitempty" example:"Error 1062 (23000): Duplicate entry '1' for key 'users.PRIMARY'"`
}

// MessageResponse is a one-line success document.
type MessageResponse struct {
	Mensaje string `json:"mensaje" example:"conexion establecida"`
}

// fail aborts the request with the error envelope. Server errors (>= 500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, msg, detail string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("error", msg).
			Str("detalle", detail).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Detalle: detail})
}

// Fail is the exported variant of fail for router-level fallbacks.
func Fail(c *gin.Context, status int, msg, detail string) { fail(c, status, msg, detail) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
