package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

const multipartMemory = 8 << 20

// fields are the request body values, from JSON, multipart or urlencoded
// bodies alike.
type fields map[string]string

// get returns the first present key, nil when none is.
func (f fields) get(keys ...string) *string {
	for _, k := range keys {
		if v, ok := f[k]; ok {
			return &v
		}
	}
	return nil
}

func (f fields) str(keys ...string) string {
	if v := f.get(keys...); v != nil {
		return *v
	}
	return ""
}

// readFields parses the body. Multipart files stay on r.MultipartForm.
func (h *Handler) readFields(w http.ResponseWriter, r *http.Request) (fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return decodeJSON(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err)
		}
		f := fields{}
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				f[k] = v[0]
			}
		}
		return f, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		f := fields{}
		for k := range r.PostForm {
			f[k] = r.PostForm.Get(k)
		}
		return f, nil
	}
}

func decodeJSON(r *http.Request) (fields, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, bodyError(err)
	}
	f := fields{}
	flatten(f, "", raw)
	return f, nil
}

// flatten stores nested objects under dotted keys and lists as comma
// separated values.
func flatten(dst fields, prefix string, raw map[string]any) {
	for k, v := range raw {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case nil:
		case map[string]any:
			flatten(dst, key, val)
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, scalar(item))
			}
			dst[key] = strings.Join(parts, ",")
		default:
			dst[key] = scalar(val)
		}
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.Validation(fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
	}
	return apperrors.Validation("Invalid request body")
}

// formFile returns the uploaded file name, or nil when absent. The caller
// closes it via the returned func.
func formFile(r *http.Request, name string) (*services.FileUpload, func(), error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[name]) == 0 {
		return nil, func() {}, nil
	}
	fh := r.MultipartForm.File[name][0]
	file, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("open %s: %w", name, err)
	}
	return &services.FileUpload{Filename: fh.Filename, Body: file}, func() { _ = file.Close() }, nil
}

// formFiles opens every named file that is present.
func formFiles(r *http.Request, names ...string) (map[string]*services.FileUpload, func(), error) {
	files := make(map[string]*services.FileUpload, len(names))
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	for _, n := range names {
		f, closeFn, err := formFile(r, n)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, closeFn)
		if f != nil {
			files[n] = f
		}
	}
	return files, closeAll, nil
}

func parseBool(field, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off", "":
		return false, nil
	}
	return false, apperrors.Validation(field + " must be yes or no")
}

func parseInt(field, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, apperrors.Validation(field + " must be a number")
	}
	return n, nil
}

// splitList turns "Go, MongoDB," into ["Go" "MongoDB"].
func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
