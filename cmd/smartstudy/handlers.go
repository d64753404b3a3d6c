package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"smartstudy/internal/app"
	"smartstudy/internal/extract"
	"smartstudy/internal/httputil"
	"smartstudy/internal/study"
	"smartstudy/internal/task"
)

const loadedNotice = "File content successfully loaded."

func submitHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := readSubmitForm(w, r, deps.Config.MaxUploadSize)
		if err != nil {
			failBody(deps.Log, w, err, deps.Config.MaxUploadSize)
			return
		}
		if err := httputil.Validator.Struct(f.submitRequest); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		kind, err := task.ParseKind(f.Task)
		if err != nil {
			httputil.Fail(deps.Log, w, "unknown task", err, http.StatusBadRequest)
			return
		}

		res, err := deps.Study.Submit(r.Context(), study.Submission{
			Upload:   f.Upload,
			Text:     f.Content,
			Task:     kind,
			Question: f.Question,
		})
		if err != nil {
			failSubmission(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"submission_id": res.ID.String(),
			"task":          res.Task.String(),
			"heading":       res.Heading,
			"text":          res.Text,
		})
	}
}

func extractHandler(deps app.Deps) http.HandlerFunc {
	maxUpload := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxUpload+formOverhead {
			failBody(deps.Log, w, errTooLarge, maxUpload)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formOverhead)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			failBody(deps.Log, w, bodyError(err), maxUpload)
			return
		}
		up, err := readUpload(r, maxUpload)
		if err != nil {
			failBody(deps.Log, w, err, maxUpload)
			return
		}
		if up == nil {
			httputil.Fail(deps.Log, w, "file is required", nil, http.StatusBadRequest)
			return
		}

		text, err := deps.Study.Extract(*up)
		if err != nil {
			failSubmission(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"filename": up.Name,
			"message":  loadedNotice,
			"text":     text,
		})
	}
}

func tasksHandler(deps app.Deps) http.HandlerFunc {
	type taskInfo struct {
		ID            string `json:"id"`
		Label         string `json:"label"`
		NeedsQuestion bool   `json:"needs_question"`
	}
	tasks := make([]taskInfo, 0, len(task.Kinds()))
	for _, k := range task.Kinds() {
		tasks = append(tasks, taskInfo{ID: k.String(), Label: k.Label(), NeedsQuestion: k.NeedsQuestion()})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"tasks":      tasks,
			"extensions": extract.SupportedExtensions(),
			"max_upload": deps.Config.MaxUploadSize,
		})
	}
}

// failureStatus maps a failed submission to an HTTP status.
func failureStatus(f *study.Failure) int {
	switch f.Class {
	case study.ClassInput:
		if errors.Is(f.Err, extract.ErrUnsupportedType) {
			return http.StatusUnsupportedMediaType
		}
		return http.StatusBadRequest
	case study.ClassConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// failSubmission writes a study failure. The service has already logged it.
func failSubmission(log *slog.Logger, w http.ResponseWriter, err error) {
	var f *study.Failure
	if !errors.As(err, &f) {
		httputil.Fail(log, w, "internal error", err, http.StatusInternalServerError)
		return
	}
	httputil.WriteJSON(w, failureStatus(f), map[string]any{
		"error":         f.Message(),
		"class":         f.Class.String(),
		"submission_id": f.ID.String(),
	})
}

func failBody(log *slog.Logger, w http.ResponseWriter, err error, maxUpload int64) {
	if errors.Is(err, errTooLarge) {
		httputil.Fail(log, w, fmt.Sprintf("file too large (max %d bytes)", maxUpload), err, http.StatusRequestEntityTooLarge)
		return
	}
	httputil.Fail(log, w, "invalid request body", err, http.StatusBadRequest)
}
