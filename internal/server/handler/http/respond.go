package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/atinyakov/FleetKeeper/internal/httperr"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/atinyakov/FleetKeeper/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MaxPageLimit is the largest limit a list request may ask for.
const MaxPageLimit = 1000

// NewValidator returns a validator reporting fields by their JSON names.
// Nullable patch fields are validated by their value; null passes omitempty.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(nullableValue[int64], models.Nullable[int64]{})
	v.RegisterCustomTypeFunc(nullableValue[float64], models.Nullable[float64]{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func nullableValue[T any](field reflect.Value) any {
	n, ok := field.Interface().(models.Nullable[T])
	if !ok || n.Value == nil {
		return nil
	}
	return *n.Value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperr.Write(w, httperr.BadRequest("invalid request body", err.Error()))
		return false
	}
	if err := v.Struct(dst); err != nil {
		if fields := httperr.FieldErrors(err); fields != nil {
			httperr.Write(w, httperr.Unprocessable("validation failed", fields))
			return false
		}
		httperr.Write(w, httperr.BadRequest("invalid request body"))
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httperr.Write(w, httperr.BadRequest("invalid "+name))
		return 0, false
	}
	return id, true
}

// parsePage reads skip and limit from the query string. A limit above
// MaxPageLimit is rejected.
func parsePage(w http.ResponseWriter, r *http.Request, defaultLimit int) (models.Page, bool) {
	page := models.Page{Limit: defaultLimit}
	q := r.URL.Query()
	for name, dst := range map[string]*int{"skip": &page.Offset, "limit": &page.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.Write(w, httperr.BadRequest("invalid "+name))
			return page, false
		}
		*dst = n
	}
	if page.Limit > MaxPageLimit {
		httperr.Write(w, httperr.BadRequest(fmt.Sprintf("limit must not exceed %d", MaxPageLimit)))
		return page, false
	}
	return page, true
}

// storeError maps repository failures to responses.
func storeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httperr.Write(w, httperr.NotFound("not found"))
	case errors.Is(err, repository.ErrConflict):
		httperr.Write(w, httperr.Conflict("already exists", err.Error()))
	case errors.Is(err, repository.ErrReference):
		httperr.Write(w, httperr.Conflict("referenced row is missing or still in use", err.Error()))
	default:
		log.Error(op, zap.Error(err))
		httperr.Write(w, httperr.Internal())
	}
}
