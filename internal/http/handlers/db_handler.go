// Database HTTP handlers.
//
// Each endpoint runs one fixed statement over a fresh connection:
//   - GET /db/listado-usuarios     (SELECT * FROM users)
//   - GET /db/conexion-fallida     (connect to an unreachable host)
//   - GET /db/tabla-inexistente    (SELECT from a missing table)
//   - GET /db/valores-duplicados   (INSERT an existing primary key)
//   - GET /db/valores-nulos        (INSERT NULL into NOT NULL columns)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-fault-demo/internal/domain"
	"github.com/tbourn/go-fault-demo/internal/repo"
)

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Description Runs SELECT * FROM users over a fresh connection.
// @Tags        Database
// @Produce     json
// @Success     200  {array}   domain.User
// @Failure     500  {object}  handlers.ErrorResponse  "Database failure"
// @Router      /db/listado-usuarios [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.dbSvc.ListUsers(c.Request.Context())
	if err != nil {
		respondErr(c, err, rulesListUsers, "")
		return
	}
	ok(c, http.StatusOK, users)
}

// ConnectionFailed godoc
// @ID          connectionFailed
// @Summary     Connect to an unreachable database host
// @Description Dials the configured bad host. Always expected to fail with 504.
// @Tags        Database
// @Produce     json
// @Success     200  {object}  handlers.MessageResponse  "Connection unexpectedly succeeded"
// @Failure     504  {object}  handlers.ErrorResponse    "Connection failed"
// @Failure     500  {object}  handlers.ErrorResponse    "Unexpected error"
// @Router      /db/conexion-fallida [get]
func (h *Handlers) ConnectionFailed(c *gin.Context) {
	if err := h.dbSvc.FailConnection(c.Request.Context()); err != nil {
		respondErr(c, err, rulesBadConnection, "")
		return
	}
	ok(c, http.StatusOK, MessageResponse{Mensaje: "conexion establecida"})
}

// MissingTable godoc
// @ID          missingTable
// @Summary     Query a table that does not exist
// @Tags        Database
// @Produce     json
// @Success     200  {array}   object                  "Table unexpectedly exists"
// @Failure     404  {object}  handlers.ErrorResponse  "Table not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Unexpected error"
// @Router      /db/tabla-inexistente [get]
func (h *Handlers) MissingTable(c *gin.Context) {
	rows, err := h.dbSvc.QueryMissingTable(c.Request.Context())
	if err != nil {
		respondErr(c, err, rulesMissingTable, repo.MissingTable)
		return
	}
	ok(c, http.StatusOK, rows)
}

// DuplicateValues godoc
// @ID          duplicateValues
// @Summary     Insert a duplicate primary key
// @Tags        Database
// @Produce     json
// @Success     201  {object}  domain.InsertResult     "Insert unexpectedly succeeded"
// @Failure     409  {object}  handlers.ErrorResponse  "Duplicate value"
// @Failure     500  {object}  handlers.ErrorResponse  "Unexpected error"
// @Router      /db/valores-duplicados [get]
func (h *Handlers) DuplicateValues(c *gin.Context) {
	if err := h.dbSvc.InsertDuplicate(c.Request.Context()); err != nil {
		respondErr(c, err, rulesDuplicate, "")
		return
	}
	ok(c, http.StatusCreated, domain.InsertResult{Mensaje: "usuario insertado"})
}

// NullValues godoc
// @ID          nullValues
// @Summary     Insert NULL into NOT NULL columns
// @Tags        Database
// @Produce     json
// @Success     201  {object}  domain.InsertResult     "Insert unexpectedly succeeded"
// @Failure     400  {object}  handlers.ErrorResponse  "Null value not allowed"
// @Failure     500  {object}  handlers.ErrorResponse  "Unexpected error"
// @Router      /db/valores-nulos [get]
func (h *Handlers) NullValues(c *gin.Context) {
	if err := h.dbSvc.InsertNulls(c.Request.Context()); err != nil {
		respondErr(c, err, rulesNulls, "")
		return
	}
	ok(c, http.StatusCreated, domain.InsertResult{Mensaje: "usuario insertado"})
}
