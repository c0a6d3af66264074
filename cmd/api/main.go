// @title           DocuChat API
// @version         1.0
// @description     Document and web RAG chat: upload files or index URLs, then ask questions grounded in them.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/data/store"
	"github.com/avasant/docuchat/internal/handlers"
	"github.com/avasant/docuchat/internal/rag/docrag"
	"github.com/avasant/docuchat/internal/rag/provider"
	"github.com/avasant/docuchat/internal/rag/scrape"
	"github.com/avasant/docuchat/internal/rag/vectorstore"
	"github.com/avasant/docuchat/internal/rag/vectorstore/memory"
	"github.com/avasant/docuchat/internal/rag/vectorstore/qdrantdb"
	"github.com/avasant/docuchat/internal/rag/webrag"
	"github.com/avasant/docuchat/internal/server"
	"github.com/avasant/docuchat/pkg/logger_i"
)

var listenAddr string

func main() {
	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using the process environment")
	}

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	userStore := store.GetRedisUserStore(serviceContext)
	documentStore := store.GetRedisDocumentStore(serviceContext)
	historyStore := store.GetRedisHistoryStore(serviceContext)
	if userStore == nil || documentStore == nil || historyStore == nil {
		logger.Error("Redis stores are offline. Shutting down.")
		return
	}

	var vectorDB vectorstore.Store
	switch config.VectorBackend() {
	case "memory":
		logger.Info("using the in-memory vector store")
		vectorDB = memory.New()
	default:
		vectorDB = qdrantdb.GetQdrantClient(serviceContext)
	}

	embeddingService, err := provider.NewEmbedder(serviceContext)
	if err != nil {
		logger.Error("embedding client init failed", "error", err)
		return
	}
	llmProvider, err := provider.NewLLM(serviceContext)
	if err != nil {
		logger.Error("llm client init failed", "error", err)
		return
	}

	if vectorDB == nil {
		logger.Error("vector store failed to initialize. Shutting down.")
		return
	}

	handlers.Init(handlers.Services{
		DocRAG:    docrag.NewService(vectorDB, llmProvider, embeddingService),
		WebRAG:    webrag.NewService(vectorDB, llmProvider, embeddingService, scrape.NewScraper()),
		Users:     userStore,
		Documents: documentStore,
		History:   historyStore,
	})

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
