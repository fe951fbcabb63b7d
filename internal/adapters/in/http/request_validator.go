package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ordering/internal/adapters/in/http/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks every request against the OpenAPI document before
// it reaches a handler. Paths the document does not describe (health, docs)
// pass through.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				// undocumented path or method, echo answers 404/405 itself
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, api.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		var schemaErr *openapi3.SchemaError
		if errors.As(reqErr.Err, &schemaErr) {
			field := strings.Join(schemaErr.JSONPointer(), ".")
			if field == "" && reqErr.Parameter != nil {
				field = reqErr.Parameter.Name
			}
			if field != "" {
				return fmt.Sprintf("Invalid request: %s: %s", field, schemaErr.Reason)
			}
			return "Invalid request: " + schemaErr.Reason
		}
		if reqErr.Parameter != nil {
			return fmt.Sprintf("Invalid request: parameter %s: %s", reqErr.Parameter.Name, reqErr.Err)
		}
		return "Invalid request: " + reqErr.Error()
	}
	return "Invalid request: " + err.Error()
}
