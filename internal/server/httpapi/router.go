package httpapi

import (
	"net/http"
	"os"

	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes builds the chi router with all API routes and middleware.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	if a.opts.UploadDir != "" {
		files := http.StripPrefix("/uploads/", http.FileServer(noDirFS{http.Dir(a.opts.UploadDir)}))
		r.Get("/uploads/*", files.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.handleRegister)
			r.Post("/login", a.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(a.authenticate)

				r.With(a.require(auth.ActionProfileRead)).Get("/profile", a.handleGetProfile)
				r.With(a.require(auth.ActionProfileUpdate)).Put("/profile", a.handleUpdateProfile)

				r.With(a.require(auth.ActionUsersManage)).Get("/all-users", a.handleListUsers)
				r.With(a.require(auth.ActionUsersManage)).Put("/users/{id}/status", a.handleSetUserStatus)
			})
		})

		r.Route("/libraries", func(r chi.Router) {
			r.Use(a.authenticate)
			r.Use(a.require(auth.ActionLibrariesManage))

			r.Get("/", a.handleListLibraries)
			r.Post("/", a.handleCreateLibrary)
			r.Get("/active", a.handleActiveLibrary)
			r.Put("/{id}/switch", a.handleSwitchLibrary)
			r.Put("/{id}", a.handleUpdateLibrary)
			r.Delete("/{id}", a.handleDeleteLibrary)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(a.authenticate)
			r.Use(a.require(auth.ActionUploadsCreate))

			r.Post("/image", a.handleUploadImage)
		})
	})

	return r
}

// noDirFS hides directory listings of the upload directory.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
