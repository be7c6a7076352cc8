// Package handlers – failure resolution.
//
// Every route declares which failure kinds it expects and how each one is
// reported. resolve is the only place that turns a tagged error into a status
// code and envelope; handlers never inspect driver or client errors.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-fault-demo/internal/domain"
	"github.com/tbourn/go-fault-demo/internal/http/middleware"
)

// Messages used by the fault routes.
const (
	MsgDatabaseAccess   = "failed to access database"
	MsgConnectionFailed = "database connection failed"
	MsgDuplicateValue   = "duplicate value"
	MsgNullValue        = "null value not allowed"
	MsgExternalAPI      = "external API failure"
	MsgUnexpected       = "unexpected server error"
)

// rule maps the failure kinds matched by match to a response. message may
// contain one %s, filled with the resource name (a table or a file).
type rule struct {
	match   func(domain.Kind) bool
	status  int
	message string
	// detail includes the error text as "detalle".
	detail bool
}

func kindIs(k domain.Kind) func(domain.Kind) bool {
	return func(got domain.Kind) bool { return got == k }
}

// Per-route rule tables. The first matching rule wins.
var (
	rulesListUsers = []rule{
		{match: domain.Kind.IsDatabase, status: http.StatusInternalServerError, message: MsgDatabaseAccess, detail: true},
	}
	rulesBadConnection = []rule{
		{match: domain.Kind.IsDatabase, status: http.StatusGatewayTimeout, message: MsgConnectionFailed, detail: true},
	}
	rulesMissingTable = []rule{
		{match: domain.Kind.IsDatabase, status: http.StatusNotFound, message: "table %s not found", detail: true},
	}
	rulesDuplicate = []rule{
		{match: domain.Kind.IsDatabase, status: http.StatusConflict, message: MsgDuplicateValue, detail: true},
	}
	rulesNulls = []rule{
		{match: domain.Kind.IsDatabase, status: http.StatusBadRequest, message: MsgNullValue, detail: true},
	}

	rulesCountryExisting = []rule{
		{match: kindIs(domain.KindExternalAPI), status: http.StatusGatewayTimeout, message: MsgExternalAPI, detail: true},
	}
	rulesCountryMissing = []rule{
		{match: kindIs(domain.KindExternalAPI), status: http.StatusNotFound, message: MsgExternalAPI, detail: true},
	}
	rulesCountryMalformed = []rule{
		{match: kindIs(domain.KindExternalAPI), status: http.StatusBadRequest, message: MsgExternalAPI, detail: true},
	}

	rulesFile = []rule{
		{match: kindIs(domain.KindFileNotFound), status: http.StatusNotFound, message: "%s not found"},
		{match: kindIs(domain.KindFileRead), status: http.StatusInternalServerError, message: "failed to read %s", detail: true},
	}
)

// resolve picks the response for err under rules. Errors no rule claims are
// unclassified: 500 with MsgUnexpected and the error text.
func resolve(err error, rules []rule, name string) (int, ErrorResponse, domain.Kind) {
	kind := domain.KindOf(err)
	if kind != domain.KindUnclassified {
		for _, r := range rules {
			if !r.match(kind) {
				continue
			}
			resp := ErrorResponse{Error: r.message}
			if strings.Contains(r.message, "%s") {
				resp.Error = fmt.Sprintf(r.message, name)
			}
			if r.detail {
				resp.Detalle = err.Error()
			}
			return r.status, resp, kind
		}
	}
	return http.StatusInternalServerError,
		ErrorResponse{Error: MsgUnexpected, Detalle: err.Error()},
		domain.KindUnclassified
}

// respondErr resolves err, records the fault kind for logs and metrics and
// writes the envelope.
func respondErr(c *gin.Context, err error, rules []rule, name string) {
	status, resp, kind := resolve(err, rules, name)
	middleware.MarkFault(c, kind.String())
	fail(c, status, resp.Error, resp.Detalle)
}
