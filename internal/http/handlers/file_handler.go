// Local file HTTP handlers.
//
//   - GET /externa/archivo/correcto     (readable file)
//   - GET /externa/archivo/inexistente  (missing file, 404)
//   - GET /externa/archivo/restringido  (unreadable file, 500)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-fault-demo/internal/services"
)

// ReadableFile godoc
// @ID          readableFile
// @Summary     Read a valid local file
// @Tags        Files
// @Produce     json
// @Success     200  {object}  domain.FileContent
// @Failure     404  {object}  handlers.ErrorResponse  "File not found"
// @Failure     500  {object}  handlers.ErrorResponse  "File read failure"
// @Router      /externa/archivo/correcto [get]
func (h *Handlers) ReadableFile(c *gin.Context) { h.file(c, services.FileReadable) }

// MissingFile godoc
// @ID          missingFile
// @Summary     Read a missing local file
// @Tags        Files
// @Produce     json
// @Success     200  {object}  domain.FileContent      "File unexpectedly exists"
// @Failure     404  {object}  handlers.ErrorResponse  "File not found"
// @Router      /externa/archivo/inexistente [get]
func (h *Handlers) MissingFile(c *gin.Context) { h.file(c, services.FileMissing) }

// RestrictedFile godoc
// @ID          restrictedFile
// @Summary     Read a restricted local file
// @Tags        Files
// @Produce     json
// @Success     200  {object}  domain.FileContent      "File unexpectedly readable"
// @Failure     500  {object}  handlers.ErrorResponse  "File read failure"
// @Router      /externa/archivo/restringido [get]
func (h *Handlers) RestrictedFile(c *gin.Context) { h.file(c, services.FileRestricted) }

func (h *Handlers) file(c *gin.Context, name string) {
	content, err := h.fileSvc.Read(c.Request.Context(), name)
	if err != nil {
		respondErr(c, err, rulesFile, name)
		return
	}
	ok(c, http.StatusOK, content)
}
