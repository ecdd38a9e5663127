package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "edgestats/internal/errors"
	"edgestats/internal/services"
)

// Response formats of the table endpoints.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type tableRequest struct {
	services.TableQuery
	Format string `validate:"omitempty,oneof=json csv"`
}

// parseTableRequest reads the table query parameters. Unknown parameters
// are ignored.
func parseTableRequest(r *http.Request, v *validator.Validate) (tableRequest, error) {
	q := r.URL.Query()
	var req tableRequest
	var err error

	if req.Season, err = intParam(q.Get("season"), "season"); err != nil {
		return req, err
	}
	if req.Week, err = intParam(q.Get("week"), "week"); err != nil {
		return req, err
	}
	req.Team = strings.TrimSpace(q.Get("team"))
	req.Position = strings.TrimSpace(q.Get("position"))
	req.Mode = strings.ToLower(strings.TrimSpace(q.Get("mode")))
	req.Format = strings.ToLower(strings.TrimSpace(q.Get("format")))

	if err := v.Struct(req); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

func intParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation(name, fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return n, nil
}

// parseSeasons reads a comma separated season list.
func parseSeasons(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	seasons := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := intParam(p, "seasons")
		if err != nil {
			return nil, err
		}
		if n < 1920 {
			return nil, apierrors.ErrValidation("seasons", fmt.Sprintf("season %d is out of range", n))
		}
		seasons = append(seasons, n)
	}
	return seasons, nil
}

// validationError converts validator failures into one API error listing
// every failed field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}
	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min", "max":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	case "alpha":
		return "must contain letters only"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
