package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"smartstudy/internal/extract"
)

// formOverhead is the multipart budget on top of the file itself.
const formOverhead = 1 << 20

var errTooLarge = errors.New("request too large")

const (
	sourceFile = "file"
	sourceText = "text"
)

// submitRequest is the JSON body of /api/submit. Multipart forms use the same
// field names plus "file" and "source".
type submitRequest struct {
	Task     string `json:"task" validate:"required,oneof=code_explain summarize quiz question_answer"`
	Content  string `json:"content"`
	Question string `json:"question" validate:"max=4000"`
}

type submitForm struct {
	submitRequest
	Source string
	Upload *extract.Upload
}

// readSubmitForm reads a JSON, urlencoded or multipart body. A file upload
// is only kept when the source is not explicitly "text".
func readSubmitForm(w http.ResponseWriter, r *http.Request, maxUpload int64) (submitForm, error) {
	var f submitForm
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formOverhead)

	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&f.submitRequest); err != nil {
			return f, bodyError(err)
		}
		f.Source = sourceText
		return f, nil
	}

	if err := r.ParseMultipartForm(maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return f, bodyError(err)
	}
	f.Task = r.FormValue("task")
	f.Content = r.FormValue("content")
	f.Question = r.FormValue("question")
	f.Source = r.FormValue("source")
	if f.Source == sourceText {
		return f, nil
	}

	up, err := readUpload(r, maxUpload)
	if err != nil {
		return f, err
	}
	f.Upload = up
	if f.Source == "" && up != nil {
		f.Source = sourceFile
	}
	return f, nil
}

// readUpload returns the "file" part, or nil when none was sent.
func readUpload(r *http.Request, maxUpload int64) (*extract.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, bodyError(err)
	}
	defer file.Close()

	if header.Size > maxUpload {
		return nil, errTooLarge
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, bodyError(err)
	}
	return &extract.Upload{Name: header.Filename, Data: data}, nil
}

func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return errTooLarge
	}
	return fmt.Errorf("read request body: %w", err)
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.EqualFold(mt, "application/json")
}
