package server

import (
	"net/http"
	"strings"

	"github.com/aristath/salesboard/internal/clients/transport"
)

// RoleHeader carries the caller's roles, comma-separated, as set by the
// identity gateway in front of this service
const RoleHeader = "X-Auth-Role"

// requireRole rejects requests without a bearer token (401) or without the
// configured role (403). The token is forwarded to the analytics API.
func (s *Server) requireRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if s.cfg.RequiredRole != "" && !hasRole(r.Header.Get(RoleHeader), s.cfg.RequiredRole) {
			s.log.Warn().
				Str("path", r.URL.Path).
				Str("roles", r.Header.Get(RoleHeader)).
				Msg("Request rejected, missing role")
			s.writeError(w, http.StatusForbidden, "insufficient role")
			return
		}

		next.ServeHTTP(w, r.WithContext(transport.WithBearer(r.Context(), token)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func hasRole(header, role string) bool {
	for _, r := range strings.Split(header, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}
