package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avasant/docuchat/internal/adapter"
	"github.com/avasant/docuchat/internal/api"
	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/webrag"
)

// AddURLHandler godoc
// @Summary      Index one URL
// @Description  Scrapes the URL into the caller's web collection. Already indexed URLs are skipped.
// @Tags         WebRAG
// @Accept       json
// @Produce      json
// @Param        request  body      api.AddURLRequest  true  "The URL"
// @Success      200      {object}  api.URLResultResponse
// @Failure      400      {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /api/webrag/url [post]
func AddURLHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var req api.AddURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	result := services.WebRAG.AddURL(r.Context(), requestUserID(r), req.URL)
	writeJsonResponse(w, http.StatusOK, adapter.ToURLResultResponse(result))
}

// AddURLsHandler godoc
// @Summary      Index a batch of URLs
// @Description  Scrapes each URL independently; per-URL failures are reported in the results, not as a request failure.
// @Tags         WebRAG
// @Accept       json
// @Produce      json
// @Param        request  body      api.AddURLsRequest  true  "The URLs"
// @Success      200      {object}  api.AddURLsResponse
// @Failure      400      {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /api/webrag/urls [post]
func AddURLsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var req api.AddURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.URLs) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "urls are required")
		return
	}

	results := services.WebRAG.AddURLs(r.Context(), requestUserID(r), req.URLs)
	writeJsonResponse(w, http.StatusOK, adapter.ToAddURLsResponse(results))
}

// ListURLsHandler godoc
// @Summary      List indexed URLs
// @Tags         WebRAG
// @Produce      json
// @Success      200  {object}  api.IndexedURLsResponse
// @Security     BearerAuth
// @Router       /api/webrag/urls [get]
func ListURLsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	urls, err := services.WebRAG.IndexedURLs(r.Context(), requestUserID(r))
	if err != nil {
		logRH.Error("listing urls failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToIndexedURLsResponse(urls))
}

// RemoveURLHandler godoc
// @Summary      Remove one URL
// @Description  Deletes every chunk of the URL from the caller's web collection.
// @Tags         WebRAG
// @Accept       json
// @Param        request  body  api.RemoveURLRequest  true  "The URL"
// @Success      204
// @Failure      404  {object}  api.ErrorResponse  "URL was never indexed"
// @Security     BearerAuth
// @Router       /api/webrag/url [delete]
func RemoveURLHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var req api.RemoveURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	err := services.WebRAG.RemoveURL(r.Context(), requestUserID(r), req.URL)
	if errors.Is(err, domain.ErrNotIndexed) {
		WriteErrorResponse(w, http.StatusNotFound, "url is not indexed")
		return
	}
	if err != nil {
		logRH.Error("url removal failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearURLsHandler godoc
// @Summary      Clear all indexed URLs
// @Description  Drops the caller's whole web collection and its chat history.
// @Tags         WebRAG
// @Success      204
// @Security     BearerAuth
// @Router       /api/webrag/urls [delete]
func ClearURLsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	userID := requestUserID(r)

	if err := services.WebRAG.ClearAll(r.Context(), userID); err != nil {
		logRH.Error("clearing collection failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if err := services.History.Clear(r.Context(), userID); err != nil {
		logRH.Warn("clearing history failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// WebSourcesHandler godoc
// @Summary      Preview answer sources
// @Description  Returns which indexed URLs a question would be answered from, without generating an answer.
// @Tags         WebRAG
// @Produce      json
// @Param        q    query     string  true  "The question"
// @Success      200  {object}  api.SourcesResponse
// @Failure      400  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /api/webrag/sources [get]
func WebSourcesHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	question := strings.TrimSpace(r.URL.Query().Get("q"))
	if question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "q is required")
		return
	}

	sources, err := services.WebRAG.Sources(r.Context(), requestUserID(r), question)
	if err != nil {
		logRH.Error("source lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSourcesResponse(sources))
}

// WebChatHandler godoc
// @Summary      Chat with indexed URLs
// @Description  Answers a question from the caller's indexed URLs, threading in recent conversation history, and returns the source URLs.
// @Tags         WebRAG
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest  true  "The question"
// @Success      200      {object}  api.ChatResponse
// @Failure      400      {object}  api.ErrorResponse  "No relevant information in the indexed URLs"
// @Failure      404      {object}  api.ErrorResponse  "No URLs indexed yet"
// @Security     BearerAuth
// @Router       /api/webrag/chat [post]
func WebChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	userID := requestUserID(r)

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	history, err := services.History.RecentTurns(r.Context(), userID, config.HistoryDepth)
	if err != nil {
		logRH.Warn("history lookup failed, answering without it", "error", err)
	}

	answer, err := services.WebRAG.Chat(r.Context(), userID, req.Message, history)
	if errors.Is(err, domain.ErrNotIndexed) {
		WriteErrorResponse(w, http.StatusNotFound, webrag.MsgNoIndexedURLs)
		return
	}
	if errors.Is(err, domain.ErrNoRelevantContent) {
		WriteErrorResponse(w, http.StatusBadRequest, webrag.MsgNoRelevantInfo)
		return
	}
	if err != nil {
		logRH.Error("web chat failed", "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "answering failed")
		return
	}

	if err := services.History.AppendTurn(r.Context(), userID, req.Message, answer.Text); err != nil {
		logRH.Warn("could not record chat turn", "error", err)
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(req.Message, answer.Text, answer.Sources))
}
