package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/cors"

	"github.com/avasant/docuchat/internal/adapter/utils"
	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/handlers"
	"github.com/avasant/docuchat/internal/middleware"
	"github.com/avasant/docuchat/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Router.Get("/healthz", middleware.Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r.Router.Post("/api/signup", middleware.Wrap(handlers.SignupHandler))
	r.Router.Post("/api/login", middleware.Wrap(handlers.LoginHandler))

	r.Router.Post("/api/documents/upload", middleware.WrapAuth(handlers.UploadDocumentHandler))
	r.Router.Get("/api/documents", middleware.WrapAuth(handlers.ListDocumentsHandler))
	r.Router.Get("/api/documents/{id}", middleware.WrapAuth(handlers.GetDocumentHandler))
	r.Router.Delete("/api/documents/{id}", middleware.WrapAuth(handlers.DeleteDocumentHandler))
	r.Router.Post("/api/documents/{id}/chat", middleware.WrapAuth(handlers.DocumentChatHandler))

	r.Router.Post("/api/webrag/url", middleware.WrapAuth(handlers.AddURLHandler))
	r.Router.Delete("/api/webrag/url", middleware.WrapAuth(handlers.RemoveURLHandler))
	r.Router.Post("/api/webrag/urls", middleware.WrapAuth(handlers.AddURLsHandler))
	r.Router.Get("/api/webrag/urls", middleware.WrapAuth(handlers.ListURLsHandler))
	r.Router.Delete("/api/webrag/urls", middleware.WrapAuth(handlers.ClearURLsHandler))
	r.Router.Post("/api/webrag/chat", middleware.WrapAuth(handlers.WebChatHandler))
	r.Router.Get("/api/webrag/sources", middleware.WrapAuth(handlers.WebSourcesHandler))

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force shut down")
		os.Exit(1)
	}
}
