// Country API HTTP handlers.
//
//   - GET /externa/recurso-existente    (known country, 504 on any failure)
//   - GET /externa/recurso-inexistente  (unknown country, 404)
//   - GET /externa/solicitud-erronea    (malformed query, 400)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-fault-demo/internal/domain"
)

// ExistingCountry godoc
// @ID          existingCountry
// @Summary     Fetch a known country
// @Description Returns name, capital and flag of Spain from the country API.
// @Tags        External
// @Produce     json
// @Success     200  {object}  domain.Country
// @Failure     504  {object}  handlers.ErrorResponse  "External API failure"
// @Router      /externa/recurso-existente [get]
func (h *Handlers) ExistingCountry(c *gin.Context) {
	h.country(c, h.countrySvc.Existing, rulesCountryExisting)
}

// MissingCountry godoc
// @ID          missingCountry
// @Summary     Fetch an unknown country
// @Tags        External
// @Produce     json
// @Success     200  {object}  domain.Country          "Country unexpectedly exists"
// @Failure     404  {object}  handlers.ErrorResponse  "External API failure"
// @Router      /externa/recurso-inexistente [get]
func (h *Handlers) MissingCountry(c *gin.Context) {
	h.country(c, h.countrySvc.Missing, rulesCountryMissing)
}

// MalformedRequest godoc
// @ID          malformedRequest
// @Summary     Send a malformed query to the country API
// @Tags        External
// @Produce     json
// @Success     200  {object}  domain.Country          "Request unexpectedly accepted"
// @Failure     400  {object}  handlers.ErrorResponse  "External API failure"
// @Router      /externa/solicitud-erronea [get]
func (h *Handlers) MalformedRequest(c *gin.Context) {
	h.country(c, h.countrySvc.Malformed, rulesCountryMalformed)
}

func (h *Handlers) country(c *gin.Context, fetch func(context.Context) (*domain.Country, error), rules []rule) {
	country, err := fetch(c.Request.Context())
	if err != nil {
		respondErr(c, err, rules, "")
		return
	}
	ok(c, http.StatusOK, country)
}
