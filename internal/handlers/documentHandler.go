package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avasant/docuchat/internal/adapter"
	"github.com/avasant/docuchat/internal/adapter/utils"
	"github.com/avasant/docuchat/internal/api"
	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/extract"
)

// UploadDocumentHandler godoc
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data and indexes it into the caller's collection. Re-uploading an unchanged file is a no-op.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The file to index (pdf, docx, txt, rtf, csv, xlsx, xls)"
// @Success      201  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse  "Missing file, oversized upload or unsupported type"
// @Failure      422  {object}  api.ErrorResponse  "File could not be parsed"
// @Security     BearerAuth
// @Router       /api/documents/upload [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	userID := requestUserID(r)

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("couldn't get target directory", "error", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	ext := strings.ToLower(filepath.Ext(fileMetadata.Filename))
	if !extract.SupportedType(ext) {
		WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q", ext))
		return
	}

	doc, err := resolveDocument(r, userID, fileMetadata.Filename, ext)
	if err != nil {
		logRH.Error("document lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	filename := fmt.Sprintf("%s%s", doc.ID, ext)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		destinationFileWriter.Close()
		WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
		return
	}
	destinationFileWriter.Close()
	doc.FilePath = tempFilePath

	result, err := services.DocRAG.Process(r.Context(), doc)
	if err != nil {
		doc.Status = domain.DocumentFailed
		doc.UpdatedAt = time.Now()
		if saveErr := services.Documents.SaveDocument(r.Context(), doc); saveErr != nil {
			logRH.Error("failed to record failed document", "error", saveErr)
		}

		var exErr *domain.ExtractionError
		if errors.As(err, &exErr) {
			WriteErrorResponse(w, http.StatusUnprocessableEntity, "file could not be parsed")
			return
		}
		logRH.Error("document ingestion failed", "documentId", doc.ID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	doc.Status = domain.DocumentReady
	doc.FileHash = result.FileHash
	doc.UpdatedAt = time.Now()
	if err := services.Documents.SaveDocument(r.Context(), doc); err != nil {
		logRH.Error("failed to save document record", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJsonResponse(w, http.StatusCreated, adapter.ToUploadResponse(doc, result.Skipped, result.ChunksCount))
}

// resolveDocument reuses the record for a re-upload of the same file name so
// the hash check can skip unchanged content; otherwise it mints a new record.
func resolveDocument(r *http.Request, userID, fileName, ext string) (domain.Document, error) {
	existing, err := services.Documents.ListByUser(r.Context(), userID)
	if err != nil {
		return domain.Document{}, err
	}
	for _, d := range existing {
		if d.FileName == fileName {
			return d, nil
		}
	}
	return domain.Document{
		ID:        utils.GetNewUUID(),
		UserID:    userID,
		FileName:  fileName,
		FileType:  ext,
		Status:    domain.DocumentUploaded,
		CreatedAt: time.Now(),
	}, nil
}

// ListDocumentsHandler godoc
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Success      200  {array}  api.DocumentResponse
// @Security     BearerAuth
// @Router       /api/documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	docs, err := services.Documents.ListByUser(r.Context(), requestUserID(r))
	if err != nil {
		logRH.Error("listing documents failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(docs))
}

// ownedDocument loads a document and hides other users' documents behind 404.
func ownedDocument(r *http.Request) (domain.Document, int) {
	id := utils.GetChiURLParam(r, "id")
	doc, err := services.Documents.GetDocument(r.Context(), id)
	if errors.Is(err, domain.ErrDocumentNotFound) || (err == nil && doc.UserID != requestUserID(r)) {
		return domain.Document{}, http.StatusNotFound
	}
	if err != nil {
		return domain.Document{}, http.StatusInternalServerError
	}
	return doc, 0
}

// GetDocumentHandler godoc
// @Summary      Get one document
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /api/documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	doc, errCode := ownedDocument(r)
	if errCode != 0 {
		WriteErrorResponse(w, errCode, http.StatusText(errCode))
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes the document record, its stored file and its vector collection.
// @Tags         Documents
// @Param        id  path  string  true  "Document ID"
// @Success      204
// @Failure      404  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /api/documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	doc, errCode := ownedDocument(r)
	if errCode != 0 {
		WriteErrorResponse(w, errCode, http.StatusText(errCode))
		return
	}

	if err := services.DocRAG.Cleanup(r.Context(), doc.ID); err != nil {
		logRH.Error("collection cleanup failed", "documentId", doc.ID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			logRH.Warn("could not remove stored file", "path", doc.FilePath, "error", err)
		}
	}
	if err := services.Documents.DeleteDocument(r.Context(), doc); err != nil {
		logRH.Error("record delete failed", "documentId", doc.ID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if err := services.History.ClearDoc(r.Context(), doc.UserID, doc.ID); err != nil {
		logRH.Warn("clearing document history failed", "documentId", doc.ID, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// DocumentChatHandler godoc
// @Summary      Chat with a document
// @Description  Answers a question using only the chunks retrieved from this document.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Document ID"
// @Param        request  body      api.ChatRequest  true  "The question"
// @Success      200      {object}  api.ChatResponse
// @Failure      404      {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /api/documents/{id}/chat [post]
func DocumentChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	doc, errCode := ownedDocument(r)
	if errCode != 0 {
		WriteErrorResponse(w, errCode, http.StatusText(errCode))
		return
	}

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	answer, err := services.DocRAG.Answer(r.Context(), doc.ID, req.Message)
	if err != nil {
		logRH.Error("document chat failed", "documentId", doc.ID, "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "answering failed")
		return
	}

	if err := services.History.AppendDocTurn(r.Context(), doc.UserID, doc.ID, req.Message, answer); err != nil {
		logRH.Warn("could not record chat turn", "documentId", doc.ID, "error", err)
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(req.Message, answer, nil))
}
