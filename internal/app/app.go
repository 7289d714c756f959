package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/ikolcov/masterblog/internal/models"
	"github.com/ikolcov/masterblog/internal/storage"
	"github.com/ikolcov/masterblog/internal/utils"
)

const maxBodyBytes = 1 << 20

type AppConfig struct {
	Port               uint16
	CorsAllowedOrigins []string
}

type App struct {
	config  AppConfig
	storage storage.Storage
	logger  *log.Logger
	server  *http.Server
}

func New(config AppConfig, s storage.Storage, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	if len(config.CorsAllowedOrigins) == 0 {
		config.CorsAllowedOrigins = []string{"*"}
	}
	a := &App{
		config:  config,
		storage: s,
		logger:  logger,
	}
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%v", config.Port),
		Handler:      a.initRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     logger,
	}
	return a
}

// respondError maps storage errors onto status codes.
func (a *App) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		utils.BadRequest(w, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.NotFound(w, err.Error())
	default:
		a.logger.Printf("app: %v", err)
		utils.InternalError(w, "internal error")
	}
}

func readPayload(w http.ResponseWriter, r *http.Request) (models.Payload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return models.DecodePayload(body)
}

// postID parses the {postId} URL parameter. A malformed id cannot match
// any post, so it is reported as not found.
func postID(r *http.Request) (models.PostID, error) {
	raw := chi.URLParam(r, "postId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", models.ErrNotFound, raw)
	}
	return models.PostID(id), nil
}

func (a *App) listPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	key := query.Get("sort")
	if key == "" {
		utils.RespondJSON(w, http.StatusOK, a.storage.ListPosts())
		return
	}

	posts, err := a.storage.SortedPosts(key, query.Get("direction"))
	if err != nil {
		a.respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, posts)
}

func (a *App) addPost(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	post, err := a.storage.AddPost(payload)
	if err != nil {
		a.respondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, post)
}

func (a *App) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	post, err := a.storage.GetPost(id)
	if err != nil {
		a.respondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, post)
}

func (a *App) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}
	if _, err := a.storage.GetPost(id); err != nil {
		a.respondError(w, err)
		return
	}
	payload, err := readPayload(w, r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	post, err := a.storage.UpdatePost(id, payload)
	if err != nil {
		a.respondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, post)
}

func (a *App) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	post, err := a.storage.DeletePost(id)
	if err != nil {
		a.respondError(w, err)
		return
	}

	utils.RespondMessage(w, http.StatusOK, fmt.Sprintf("Post with id %d has been deleted successfully.", post.Id))
}

func (a *App) savePosts(w http.ResponseWriter, r *http.Request) {
	if err := a.storage.Save(r.Context()); err != nil {
		utils.InternalError(w, "failed to save posts")
		return
	}
	utils.RespondMessage(w, http.StatusOK, "Posts saved.")
}

func (a *App) searchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	for _, field := range storage.SearchFields {
		if _, ok := query[field]; !ok {
			continue
		}
		posts, err := a.storage.Search(field, query.Get(field))
		if err != nil {
			a.respondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, posts)
		return
	}

	utils.BadRequest(w, "search needs one of title, content, author or date_created")
}

func health(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) initRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: a.config.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	r.Get("/health", health)
	r.Get("/api/docs", swaggerUI)
	r.Get("/static/masterblog.yaml", openAPIDocument)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", a.listPosts)
		r.Post("/", a.addPost)
		r.Post("/save", a.savePosts)
		r.Get("/{postId}", a.getPost)
		r.Put("/{postId}", a.updatePost)
		r.Delete("/{postId}", a.deletePost)
	})
	r.Get("/api/search", a.searchPosts)
	return r
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Start serves until Shutdown is called.
func (a *App) Start() error {
	a.logger.Printf("app: listening on %s", a.server.Addr)
	if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
