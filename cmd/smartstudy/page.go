package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"smartstudy/internal/app"
	"smartstudy/internal/extract"
	"smartstudy/internal/study"
	"smartstudy/internal/task"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type taskOption struct {
	Value         string
	Label         string
	Selected      bool
	NeedsQuestion bool
}

// pageData drives templates/index.html. Result and Error are never both set.
type pageData struct {
	Tasks     []taskOption
	Accept    string
	MaxUpload int64
	Source    string
	Content   string
	Question  string
	// AskQuestion shows the question field for the selected task.
	AskQuestion bool
	Notice      string
	Heading     string
	Result      string
	Error       string
	Submission  string
}

func newPageData(deps app.Deps, selected string) pageData {
	d := pageData{
		Accept:    acceptList(),
		MaxUpload: deps.Config.MaxUploadSize,
		Source:    sourceText,
	}
	for _, k := range task.Kinds() {
		opt := taskOption{Value: k.String(), Label: k.Label(), Selected: k.String() == selected, NeedsQuestion: k.NeedsQuestion()}
		if opt.Selected || (selected == "" && len(d.Tasks) == 0) {
			d.AskQuestion = opt.NeedsQuestion
		}
		d.Tasks = append(d.Tasks, opt)
	}
	return d
}

func pageHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(deps, w, http.StatusOK, newPageData(deps, ""))
	}
}

// pageSubmitHandler runs one submit action from the form. With the file
// source the upload replaces typed content and is extracted by Submit.
func pageSubmitHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := readSubmitForm(w, r, deps.Config.MaxUploadSize)
		data := newPageData(deps, f.Task)
		data.Content = f.Content
		data.Question = f.Question
		if f.Source != "" {
			data.Source = f.Source
		}
		if err != nil {
			status := http.StatusBadRequest
			data.Error = "Could not read the submitted form."
			if errors.Is(err, errTooLarge) {
				status = http.StatusRequestEntityTooLarge
				data.Error = fmt.Sprintf("File is too large (max %d bytes).", deps.Config.MaxUploadSize)
			}
			deps.Log.Warn("invalid form", "err", err)
			renderPage(deps, w, status, data)
			return
		}

		sub := study.Submission{Text: f.Content, Question: f.Question}
		if data.Source == sourceFile {
			sub.Text = ""
			sub.Upload = f.Upload
		}
		// An unknown task is left as the zero kind; Submit rejects it once the
		// input has been collected.
		if k, err := task.ParseKind(f.Task); err == nil {
			sub.Task = k
		}

		res, err := deps.Study.Submit(r.Context(), sub)
		if sub.Upload != nil && !extractionFailed(err) {
			data.Notice = loadedNotice
		}
		if err != nil {
			renderFailure(deps, w, data, err)
			return
		}
		data.Heading = res.Heading
		data.Result = res.Text
		data.Submission = res.ID.String()
		renderPage(deps, w, http.StatusOK, data)
	}
}

// extractionFailed reports whether err stopped a submission while reading its upload.
func extractionFailed(err error) bool {
	var extErr *extract.ExtractionError
	return errors.Is(err, extract.ErrUnsupportedType) || errors.As(err, &extErr)
}

func renderFailure(deps app.Deps, w http.ResponseWriter, data pageData, err error) {
	var f *study.Failure
	status := http.StatusInternalServerError
	data.Error = "Something went wrong while generating the response."
	if errors.As(err, &f) {
		status = failureStatus(f)
		data.Error = f.Message()
		data.Submission = f.ID.String()
	} else {
		deps.Log.Error("submission failed", "err", err)
	}
	data.Heading, data.Result = "", ""
	renderPage(deps, w, status, data)
}

func renderPage(deps app.Deps, w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		deps.Log.Error("render page failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		deps.Log.Warn("write page failed", "err", err)
	}
}

func acceptList() string {
	var exts []string
	for _, e := range extract.SupportedExtensions() {
		exts = append(exts, "."+e)
	}
	return strings.Join(exts, ",")
}
