package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	maxPageTreeDepth = 64
	// every page tree node needs at least this many bytes of file
	minPDFObjectSize = 16
)

// extractPDF concatenates the text of every page in order. Pages without
// extractable text (scans, images, broken streams) contribute nothing.
func extractPDF(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	root := pdfReader.Trailer().Key("Root").Key("Pages")
	for _, page := range pageLeaves(root, len(content)/minPDFObjectSize+1) {
		textBuilder.WriteString(pageText(page))
	}
	return textBuilder.String(), nil
}

// pageLeaves walks the page tree from root and returns its /Page leaves in
// document order, each object once. /Count is ignored: it is what the file
// claims, not what it holds. budget bounds the number of nodes visited.
func pageLeaves(root pdf.Value, budget int) []pdf.Page {
	var pages []pdf.Page
	seen := make(map[string]bool)

	var walk func(node pdf.Value, depth int)
	walk = func(node pdf.Value, depth int) {
		if budget <= 0 || depth > maxPageTreeDepth || node.Kind() != pdf.Dict {
			return
		}
		budget--
		// the dictionary text carries its indirect references, so it
		// identifies the object
		id := node.String()
		if seen[id] {
			return
		}
		seen[id] = true

		switch node.Key("Type").Name() {
		case "Page":
			pages = append(pages, pdf.Page{V: node})
		case "Pages":
			kids := node.Key("Kids")
			for i := 0; i < kids.Len(); i++ {
				walk(kids.Index(i), depth+1)
			}
		}
	}
	walk(root, 0)
	return pages
}

func pageText(page pdf.Page) string {
	if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
