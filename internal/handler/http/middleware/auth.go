package middleware

import (
	"net/http"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, actor.ErrMissingActor)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, actor.ErrMissingActor)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, actor.ErrMissingActor)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// DirectorOnly guards the salary approval surface.
func DirectorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		act, err := actor.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !act.CanEditSalaryDirectly() {
			response.HandleError(w, actor.ErrDirectorAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
