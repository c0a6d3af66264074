package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avasant/docuchat/internal/adapter"
	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/data/store"
	"github.com/avasant/docuchat/internal/rag/docrag"
	"github.com/avasant/docuchat/internal/rag/webrag"
	"github.com/avasant/docuchat/pkg/logger_i"
)

var logRH *logger_i.Logger

// Services holds everything the handlers call into. Set once at startup.
type Services struct {
	DocRAG    docrag.Service
	WebRAG    webrag.Service
	Users     *store.UserStore
	Documents *store.DocumentStore
	History   *store.HistoryStore
}

var services Services

func Init(s Services) {
	logRH = logger_i.NewLogger("handlers")
	services = s
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message, httpCode))
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

// requestUserID reads the authenticated user injected by the auth middleware.
func requestUserID(r *http.Request) string {
	userID, _ := r.Context().Value(config.USER_ID_KEY).(string)
	return userID
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, config.UploadDir)
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}
