package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"bookshelf/internal/identify"
	"bookshelf/internal/models"
)

// IdentifyResponse carries the merged record plus the advisory confidence the
// presentation layer uses to pick a display message. Confidence never gates
// whether the record can be saved.
type IdentifyResponse struct {
	Record     *models.CombinedRecord `json:"record"`
	Confidence int                    `json:"confidence"`
	Message    string                 `json:"message"`
}

func (h *Handler) HandleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := h.requireSession(w, r); !ok {
		return
	}

	var image []byte
	var err error
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		image, err = h.readCoverFromURL(r)
	} else {
		image, err = h.readCoverFromUpload(r)
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.pipeline.Identify(r.Context(), image)
	if err != nil {
		if errors.Is(err, identify.ErrVisionFailed) || errors.Is(err, identify.ErrNotIdentified) {
			h.writeError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Identification failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	confidence := identify.Confidence(record)
	message := "partial data"
	if confidence == 3 {
		message = "identified"
	}

	slog.Info("Identified book from cover", "title", record.Title, "isbn", record.ISBN, "confidence", confidence)
	h.writeJSON(w, IdentifyResponse{
		Record:     record,
		Confidence: confidence,
		Message:    message,
	})
}

func (h *Handler) readCoverFromURL(r *http.Request) ([]byte, error) {
	var request struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, errors.New("Invalid JSON: " + err.Error())
	}
	if request.ImageURL == "" {
		return nil, errors.New("image_url is required")
	}
	return h.fetcher.FetchCover(r.Context(), request.ImageURL)
}

func (h *Handler) readCoverFromUpload(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("files")
	if err != nil {
		file, _, err = r.FormFile("file")
		if err != nil {
			return nil, errors.New("Failed to read file: " + err.Error())
		}
	}
	defer file.Close()

	// Limit file size to 10MB
	image, err := io.ReadAll(io.LimitReader(file, 10*1024*1024))
	if err != nil {
		return nil, errors.New("Failed to read file contents: " + err.Error())
	}
	if len(image) >= 10*1024*1024 {
		return nil, errors.New("File too large (max 10MB)")
	}
	if len(image) == 0 {
		return nil, errors.New("Uploaded file is empty")
	}
	return image, nil
}
