package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/plainrfc/internal/parser"
	"github.com/dgallion1/plainrfc/internal/pipeline"
	"github.com/dgallion1/plainrfc/internal/rfcxml"
)

// handleConvert converts one document. The input is either a multipart
// "file" field or a raw body in the native line markup.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	var (
		data     []byte
		filename string
		err      error
	)
	if isMultipart(r) {
		data, filename, err = s.readFormFile(r)
	} else {
		filename = "body.txt"
		if f := r.URL.Query().Get("format"); f != "" {
			filename = "body." + strings.TrimPrefix(f, ".")
		}
		data, err = io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	}
	if err != nil {
		requestError(w, err)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("input exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	doc, err := s.convert(data, filename)
	if err != nil {
		s.log.Info("conversion rejected", "filename", filename, "error", err)
		conversionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=us-ascii")
	w.Header().Set("ETag", `"`+pipeline.ContentHashHex([]byte(doc))[:16]+`"`)
	io.WriteString(w, doc)
}

// handleBatchConvert converts every "files" part and reports each result.
func (s *Server) handleBatchConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		requestError(w, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		result := map[string]any{"filename": filename}
		results = append(results, result)

		if !parser.IsSupportedExtension(filename) {
			result["error"] = fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename))
			continue
		}

		f, err := fh.Open()
		if err != nil {
			result["error"] = "failed to open file"
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			result["error"] = "file too large or read error"
			continue
		}

		doc, err := s.convert(data, filename)
		if err != nil {
			result["error"] = err.Error()
			if line := rfcxml.LineOf(err); line > 0 {
				result["line"] = line
			}
			continue
		}
		result["xml"] = doc
		result["bytes"] = len(doc)
		result["sha256"] = pipeline.ContentHashHex([]byte(doc))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func (s *Server) convert(data []byte, filename string) (string, error) {
	start := time.Now()
	doc, err := pipeline.ConvertBytes(data, filename, s.boilerplate, s.opts)
	if s.stats != nil {
		if err != nil {
			s.stats.RecordFailure()
		} else {
			s.stats.Record(time.Since(start))
		}
	}
	return doc, err
}

func (s *Server) readFormFile(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, sanitizeFilename(header.Filename), nil
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

func requestError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		jsonError(w, fmt.Sprintf("request exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
		return
	}
	jsonError(w, err.Error(), http.StatusBadRequest)
}

func conversionError(w http.ResponseWriter, err error) {
	body := map[string]any{"error": err.Error()}
	if line := rfcxml.LineOf(err); line > 0 {
		body["line"] = line
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(body)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
