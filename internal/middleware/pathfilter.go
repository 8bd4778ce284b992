package middleware

import (
	"net/http"
	"strings"

	"github.com/Opirel/finalProj-dnd-backend/pkg/utils"
)

// invalidPathChars are rejected anywhere in a request path before routing.
const invalidPathChars = "`@$#%^*=<>[]|\\~"

// PathFilter rejects requests whose path contains a disallowed character
// with a 400 format error.
func PathFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.ContainsAny(r.URL.Path, invalidPathChars) {
			utils.RespondJSON(w, http.StatusBadRequest, map[string]string{"error": "format error"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
