package web

import (
	"io"
	"net/http"
	"strconv"

	"github.com/vbonduro/mealprep/internal/domain"
)

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// readImage pulls the "image" part out of a multipart upload and sniffs its
// type. On failure it writes the response and returns ok=false.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) (data []byte, mimeType string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to parse form"}, s.logger)
		return nil, "", false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "image file required"}, s.logger)
		return nil, "", false
	}
	defer closeWithLog(file, "upload file", s.logger)

	data, err = io.ReadAll(file)
	if err != nil {
		s.logger.Error("read upload failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read file"}, s.logger)
		return nil, "", false
	}

	mimeType, ok = allowedImageMIME(data)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported image format"}, s.logger)
		return nil, "", false
	}
	return data, mimeType, true
}

type scanResponse struct {
	Items []domain.InventoryItem `json:"items"`
	Added bool         `json:"added"`
}

// handleScanInventory runs an uploaded photo through the vision backend.
// With ?add=true the detected items are added to the inventory.
func (s *Server) handleScanInventory(w http.ResponseWriter, r *http.Request) {
	add, _ := strconv.ParseBool(r.URL.Query().Get("add"))

	data, mimeType, ok := s.readImage(w, r)
	if !ok {
		return
	}

	items, err := s.service.ScanInventory(r.Context(), data, mimeType, add)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{Items: items, Added: add}, s.logger)
}

func (s *Server) handleUploadRecipePhoto(w http.ResponseWriter, r *http.Request) {
	data, mimeType, ok := s.readImage(w, r)
	if !ok {
		return
	}

	recipe, err := s.service.SetRecipePhoto(r.Context(), r.PathValue("id"), data, mimeType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe, s.logger)
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	reader, mimeType, err := s.service.Photo(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer closeWithLog(reader, "photo reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write photo failed", "storage_key", key, "error", err)
	}
}
