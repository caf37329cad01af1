package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

// accessLog logs one line per request with the matched route template.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"route", metrics.RouteTemplate(r),
			"status", rec.Status,
			"duration", time.Since(start).String(),
		)
	})
}

// authedHandler is a handler that runs on behalf of a resolved user.
type authedHandler func(w http.ResponseWriter, r *http.Request, user *models.User)

// bearerToken returns the token carried in the Authorization header. Both
// the bare token and the "Bearer <token>" form are accepted.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	if t, ok := strings.CutPrefix(h, common.BearerPrefix); ok {
		return strings.TrimSpace(t)
	}
	return h
}

func (s *Server) authenticated(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.users.Resolve(r.Context(), bearerToken(r))
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
		s.logger.Debug(r.Context(), "Resolved user", "user_id", user.ID)
		h(w, r, user)
	}
}
