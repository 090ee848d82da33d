package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pavelanni/examcloud/internal/importer"
)

const maxImportBytes = 10 << 20

func (h *Handler) handleExportResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ExportResults())
}

// handleImportExams accepts an exams JSON file as the multipart field
// "exams_file". The upload's file name is the import key, so re-uploading the
// same file is skipped unless force=true.
func (h *Handler) handleImportExams(w http.ResponseWriter, r *http.Request) {
	if h.hashes == nil {
		writeError(w, r, http.StatusServiceUnavailable, "import_disabled", "InternalError", nil)
		return
	}
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	file, header, err := r.FormFile("exams_file")
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		writeError(w, r, http.StatusInternalServerError, "server_error", "InternalError", nil)
		return
	}

	force, _ := strconv.ParseBool(r.FormValue("force"))
	rep, err := importer.Import(r.Context(), h.store, h.hashes, header.Filename, data, force)
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}

	slog.Info("uploaded exams via admin", "filename", header.Filename, "exams", rep.Exams, "skipped", rep.Skipped)
	status := http.StatusCreated
	if rep.Skipped {
		status = http.StatusOK
	}
	writeJSON(w, status, rep)
}
