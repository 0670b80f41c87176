package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type Handlers struct {
	Polls  *PollHandler
	Votes  *VoteHandler
	Auth   *AuthHandler
	Users  *UserHandler
	Groups *GroupHandler
	Links  Links
}

func NewHandler(h Handlers, authService ports.AuthService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(Authenticate(authService))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls/", http.StatusFound)
	})

	r.Route("/polls", func(r chi.Router) {
		r.Get("/", h.Polls.Index)
		r.Get("/{id}/", h.Polls.Detail)
		r.Get("/{id}/results/", h.Polls.Results)
		r.Post("/{id}/vote/", h.Votes.Vote)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", apiRoot(h.Links))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", h.Polls.ListQuestions)
			r.With(RequireAuth).Post("/", h.Polls.CreateQuestion)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Users.List)
				r.Post("/", h.Users.Create)
				r.Get("/{id}/", h.Users.Get)
				r.Put("/{id}/", h.Users.Update)
				r.Patch("/{id}/", h.Users.Update)
				r.Delete("/{id}/", h.Users.Delete)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", h.Groups.List)
				r.Post("/", h.Groups.Create)
				r.Get("/{id}/", h.Groups.Get)
				r.Put("/{id}/", h.Groups.Update)
				r.Patch("/{id}/", h.Groups.Update)
				r.Delete("/{id}/", h.Groups.Delete)
			})
		})
	})

	return r
}

// apiRoot lists the browsable API resources.
func apiRoot(links Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"users":  links.URL(r, "/api/users/"),
			"groups": links.URL(r, "/api/groups/"),
		})
	}
}
