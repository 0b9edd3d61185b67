// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/doc2md/internal/format"
	"github.com/pdiddy/doc2md/internal/status"
	"github.com/pdiddy/doc2md/pkg/types"
)

const (
	uploadField      = "file"
	maxUploadMemory  = 32 << 20
	defaultOutputExt = ".md"
)

// ConvertResponse is the reply to a successful upload.
type ConvertResponse struct {
	Message      string `json:"message"`
	ConversionID string `json:"conversion_id"`
	Status       string `json:"status"`
}

// FormatsResponse lists the registered extensions.
type FormatsResponse struct {
	InputFormats  []string `json:"input_formats"`
	OutputFormats []string `json:"output_formats"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "doc2md"})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatsResponse{
		InputFormats:  s.engine.SupportedInputFormats(),
		OutputFormats: s.engine.SupportedOutputFormats(),
	})
}

// handleConvert handles POST /convert/. The conversion runs inside the
// request; the record is completed or failed before the reply is sent.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Invalid upload: %v", err))
		return
	}
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Missing upload field: "+uploadField)
		return
	}
	defer file.Close()

	inputName := filepath.Base(header.Filename)
	inExt := format.ExtOf(inputName)
	if !slices.Contains(s.engine.SupportedInputFormats(), inExt) {
		writeError(w, http.StatusBadRequest, "Unsupported input format: "+inExt)
		return
	}

	outExt := defaultOutputExt
	if q := r.URL.Query().Get("output_format"); q != "" {
		outExt = format.NormalizeExt(q)
	}
	if !slices.Contains(s.engine.SupportedOutputFormats(), outExt) {
		writeError(w, http.StatusBadRequest, "Unsupported output format: "+outExt)
		return
	}

	id := s.newID()
	inputPath := filepath.Join(s.cfg.UploadDir, id+inExt)
	outputPath := filepath.Join(s.cfg.ConvertedDir, id+outExt)

	if err := saveUpload(file, inputPath); err != nil {
		s.log.Error().Err(err).Str("conversion_id", id).Msg("saving upload")
		writeError(w, http.StatusInternalServerError, "Saving upload failed")
		return
	}

	if err := s.store.Create(ctx, id, inputName, s.now()); err != nil {
		os.Remove(inputPath)
		s.log.Error().Err(err).Str("conversion_id", id).Msg("recording conversion")
		writeError(w, http.StatusInternalServerError, "Recording conversion failed")
		return
	}

	if err := s.engine.Convert(inputPath, outputPath); err != nil {
		if mErr := s.store.MarkFailed(ctx, id); mErr != nil {
			s.log.Error().Err(mErr).Str("conversion_id", id).Msg("marking conversion failed")
		}
		os.Remove(inputPath)
		os.Remove(outputPath)
		s.log.Warn().Err(err).Str("conversion_id", id).Str("input", inputName).Msg("conversion failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Conversion failed: %v", err))
		return
	}

	if err := s.store.MarkCompleted(ctx, id, filepath.Base(outputPath)); err != nil {
		s.log.Error().Err(err).Str("conversion_id", id).Msg("marking conversion completed")
		writeError(w, http.StatusInternalServerError, "Recording conversion failed")
		return
	}

	s.log.Info().Str("conversion_id", id).Str("input", inputName).Msg("conversion completed")
	writeJSON(w, http.StatusOK, ConvertResponse{
		Message:      "Document conversion started",
		ConversionID: id,
		Status:       "success",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if rec.Status != types.ConversionCompleted {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Conversion is not completed. Current status: %s", rec.Status))
		return
	}

	path := filepath.Join(s.cfg.ConvertedDir, rec.OutputFile)
	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusNotFound, "Converted file not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		writeError(w, http.StatusNotFound, "Converted file not found")
		return
	}

	name := "converted_" + rec.InputFile + filepath.Ext(rec.OutputFile)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// lookup fetches the record named by the {id} URL parameter, writing the
// error reply itself when it cannot.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (types.ConversionRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, status.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Conversion ID not found")
		return rec, false
	}
	if err != nil {
		s.log.Error().Err(err).Str("conversion_id", id).Msg("reading conversion")
		writeError(w, http.StatusInternalServerError, "Reading conversion failed")
		return rec, false
	}
	return rec, true
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return dst.Close()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorResponse{Detail: detail})
}
