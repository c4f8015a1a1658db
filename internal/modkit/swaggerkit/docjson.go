package swaggerkit

import (
	"encoding/json"
	"net/http"

	docs "yukbul/internal/services/api/docs"
)

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON parses the registered swagger doc on every request and serves
// it lifted to OAS 3.0 with the shared error responses filled in
func serveDocJSON(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "swagger doc does not parse", http.StatusInternalServerError)
			return
		}
		Decorate(spec, base)
		writeSpec(w, spec)
	}
}
