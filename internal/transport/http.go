package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/ws"
)

// ProjectService covers the project operations the API exposes.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id int64) (*project.Project, error)
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
	Update(ctx context.Context, id int64, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id int64) error
	Duplicate(ctx context.Context, id int64) (*project.Project, error)
}

// TaskService covers the task operations the API exposes.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	Get(ctx context.Context, id int64) (*task.Task, error)
	Update(ctx context.Context, id int64, req task.UpdateRequest) (*task.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, opts task.ListOptions) ([]task.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]task.Task, error)
	Search(ctx context.Context, query string, opts task.SearchOptions) ([]task.Task, error)
	Tree(ctx context.Context, projectID int64) (*task.Forest, error)
}

// ActivityService reads the audit trail.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Server wires HTTP handlers to the domain services.
type Server struct {
	projects ProjectService
	tasks    TaskService
	activity ActivityService
	events   *ws.Hub
	logger   *slog.Logger
}

// Config carries the server's collaborators. Events, Auth and Logger may be
// nil; the corresponding behavior is simply disabled.
type Config struct {
	Projects ProjectService
	Tasks    TaskService
	Activity ActivityService
	Events   *ws.Hub
	Auth     func(http.Handler) http.Handler
	Origins  []string
	Logger   *slog.Logger
}

// NewServer creates the HTTP router with middleware and all API routes.
func NewServer(cfg Config) *chi.Mux {
	srv := &Server{
		projects: cfg.Projects,
		tasks:    cfg.Tasks,
		activity: cfg.Activity,
		events:   cfg.Events,
		logger:   cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(Recoverer(cfg.Logger))
	if len(cfg.Origins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.Origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler)
	}

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.listProjects)
			r.Post("/", srv.createProject)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", srv.getProject)
				r.Patch("/", srv.updateProject)
				r.Delete("/", srv.deleteProject)
				r.Post("/duplicate", srv.duplicateProject)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", srv.listTasks)
			r.Post("/", srv.createTask)
			r.Get("/project/{projectID}", srv.tasksByProject)
			r.Get("/project/{projectID}/tree", srv.projectTree)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", srv.getTask)
				r.Put("/", srv.updateTask)
				r.Delete("/", srv.deleteTask)
			})
		})

		r.Get("/activity", srv.listActivity)
		r.Get("/ws", srv.handleWS)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// publish pushes an event to connected clients when live updates are wired.
func (s *Server) publish(eventType string, data any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.Event{Type: eventType, Data: data})
}
