package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/kvstore"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/session"
	"taskboard/internal/worker"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	sessions  *session.Store
	tasks     *service.TaskService
	notifier  *worker.OverdueNotifier
	storage   handlers.StorageChecker // nil unless the scope has a connection worth pinging
	shutdowns []func()                // run in reverse order on teardown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: flushing logs")
		logger.Sync()
	})

	durable, err := a.openDurableStore(ctx)
	if err != nil {
		return err
	}

	// The session scope lives only as long as the process, mirroring
	// tab-scoped storage.
	a.sessions = session.NewStore(kvstore.NewMemoryStore())

	taskRepo := repository.NewTaskRepository(durable)
	a.tasks = service.NewTaskService(taskRepo)
	a.tasks.Load(ctx)

	a.notifier = worker.NewOverdueNotifier(
		a.tasks,
		time.Duration(a.config.Notifier.Interval),
		time.Duration(a.config.Notifier.Debounce),
		nil,
	)

	a.router = a.buildRouter()
	a.server = &http.Server{
		Addr:    a.config.ServerAddr(),
		Handler: a.router,
	}

	return nil
}

// Run starts the notifier and the HTTP server and blocks until ctx is
// cancelled, then tears everything down in order.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := a.notifier.Start(workerCtx); err != nil {
			logger.Error("App: overdue notifier failed", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("App: server started on " + a.config.ServerAddr())
		serverErr <- a.server.ListenAndServe()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("App: shutdown requested")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: server shutdown failed", err)
	}

	stopWorker()
	<-workerDone

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}

	return runErr
}

func (a *App) openDurableStore(ctx context.Context) (kvstore.Store, error) {
	switch a.config.Storage.Type {
	case "file":
		store, err := kvstore.NewFileStore(a.config.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		return store, nil
	case "postgres":
		store, err := kvstore.NewPostgresStore(ctx, a.config.Storage.URL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		a.storage = store
		a.shutdowns = append(a.shutdowns, store.Close)
		return store, nil
	case "memory":
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", a.config.Storage.Type)
	}
}

func (a *App) buildRouter() *chi.Mux {
	sessionHandler := handlers.NewSessionHandler(a.sessions)
	taskHandler := handlers.NewTaskHandler(a.tasks)
	healthHandler := handlers.NewHealthHandler(a.storage)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Post("/login", sessionHandler.Login)
	r.Post("/logout", sessionHandler.Logout)
	r.Get("/me", sessionHandler.Me)
	r.Get("/health", healthHandler.HealthCheck)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.RequireSession(a.sessions))

		r.Get("/", taskHandler.GetTasks)  // GET /tasks?filter=&search=
		r.Post("/", taskHandler.PostTask) // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", taskHandler.UpdateTask)          // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTask)       // DELETE /tasks/{id}?confirm=true
			r.Post("/toggle", taskHandler.ToggleTask)   // POST /tasks/{id}/toggle
		})
	})

	return r
}
