package importcsv

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlfredoMejia3001/facturacion/internal/importer"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
)

// maxUploadSize bounds the multipart form held in memory.
const maxUploadSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=parser_mock.go -package=importcsv
type Parser interface {
	Parse(r io.Reader) ([]importer.RawRow, error)
}

type Handler struct {
	parser Parser
	store  *store.Store
}

func NewHandler(parser Parser, st *store.Store) *Handler {
	return &Handler{parser: parser, store: st}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rejectedRowDTO struct {
	Row    int               `json:"row"`
	Data   map[string]string `json:"data"`
	Reason string            `json:"reason"`
}

type importResponse struct {
	Imported   int              `json:"imported"`
	Duplicates []rejectedRowDTO `json:"duplicates"`
	Errors     []rejectedRowDTO `json:"errors"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		// Structural failures abort before any row is processed.
		status := http.StatusBadRequest
		if errors.Is(err, importer.ErrEmptyFile) {
			status = http.StatusUnprocessableEntity
		}

		http.Error(w, err.Error(), status)

		return
	}

	result := h.store.ImportCSV(rows)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(toResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(result importer.BatchResult) importResponse {
	return importResponse{
		Imported:   len(result.Imported),
		Duplicates: toRejectedDTOs(result.Duplicates),
		Errors:     toRejectedDTOs(result.Errors),
	}
}

func toRejectedDTOs(rejected []importer.Rejected) []rejectedRowDTO {
	dtos := make([]rejectedRowDTO, 0, len(rejected))

	for _, rej := range rejected {
		data := make(map[string]string, len(rej.Fields))
		for field, value := range rej.Fields {
			data[string(field)] = value
		}

		dtos = append(dtos, rejectedRowDTO{
			Row:    rej.Line,
			Data:   data,
			Reason: rej.Reason,
		})
	}

	return dtos
}
