// Package swaggerkit mounts the Swagger UI and serves the OpenAPI document
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	phttp "yukbul/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON("/api/v1"))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func writeSpec(w http.ResponseWriter, spec map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(spec)
}

// defaultResponses are added to every operation that does not declare them.
// Codes match the envelope's numeric error codes.
var defaultResponses = []struct {
	status  int
	code    int
	message string
}{
	{http.StatusBadRequest, 6, "text is required"},
	{http.StatusUnprocessableEntity, 5, "unknown place: istanbull"},
	{http.StatusInternalServerError, 1, "internal error"},
}

// Decorate lifts spec to OAS 3.0.3, sets servers to base when missing and
// adds the ErrorResponse schema plus default error responses
func Decorate(spec map[string]any, base string) {
	if spec == nil {
		return
	}
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	// the UI cannot render 3.1 yet
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer"},
				"error":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
			},
			"required": []any{"status_code", "status"},
		}
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for _, d := range defaultResponses {
				key := strconv.Itoa(d.status)
				if _, exists := resps[key]; exists {
					continue
				}
				resps[key] = map[string]any{
					"description": http.StatusText(d.status),
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
							"example": map[string]any{
								"status_code": d.status,
								"status":      http.StatusText(d.status),
								"code":        d.code,
								"error":       d.message,
							},
						},
					},
				}
			}
		}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
