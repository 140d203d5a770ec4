package httpapi

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.yaml
var openAPIDocument []byte

func (h *Handler) swaggerIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/openapi.yaml", http.StatusTemporaryRedirect)
}

func (h *Handler) swaggerDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPIDocument)
}
