package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/http/middleware"
)

// respondData sends the {data, message, status} envelope used by every read endpoint.
func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"data":       data,
		"message":    message,
		"status":     status,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures body is present and parsable. A wrongly typed field
// is reported as a ValidationError naming it.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondDomainError(c, domain.MalformedInputError{Err: io.EOF})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			RespondDomainError(c, domain.ValidationError{
				Field: typeErr.Field,
				Msg:   fmt.Sprintf("%s has an invalid type (%s)", typeErr.Field, typeErr.Value),
				Err:   err,
			})
			return false
		}
		RespondDomainError(c, domain.MalformedInputError{Err: err})
		return false
	}
	return true
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "Invalid " + name, Err: err})
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive integer query parameter; 0 means absent.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: name + " must be a number", Err: err})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return def
	}
	return n
}

func queryBool(c *gin.Context, name string) *bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func pageFromQuery(c *gin.Context) domain.Pagination {
	return domain.Pagination{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 50),
	}.Normalize()
}

func respondCreated(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"message": message, "status": http.StatusCreated}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusCreated, body)
}
