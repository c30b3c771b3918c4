package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request once it completes.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		a.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// authenticate verifies the bearer token and attaches the caller identity
// to the request context. Missing and invalid tokens both yield 401.
func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			writeFail(w, http.StatusUnauthorized, "Access token required")
			return
		}

		id, err := a.tokens.Verify(token)
		if err != nil {
			writeFail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// require rejects callers whose role does not grant action on their own
// resources.
func (a *API) require(action auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFrom(r.Context())
			if !ok {
				writeFail(w, http.StatusUnauthorized, "User not authenticated")
				return
			}
			if !auth.Authorize(id, action, auth.Resource{OwnerID: id.UserID}) {
				writeFail(w, http.StatusForbidden, "You do not have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identity(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}
