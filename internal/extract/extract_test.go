package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"notes.txt", "txt"},
		{"Report.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"Makefile", ""},
		{"dir.v2/main.py", "py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Upload{Name: tt.name}.Ext())
		})
	}
}

func TestTextPlainAndSource(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"notes.txt", "The sky is blue.\nWater is wet."},
		{"add.py", "def add(a,b): return a+b\n"},
		{"main.cpp", "int main() { return 0; }\n"},
		{"unicode.txt", "café, naïve, 日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(Upload{Name: tt.name, Data: []byte(tt.content)})
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestTextStripsBOM(t *testing.T) {
	got, err := Text(Upload{Name: "bom.txt", Data: append([]byte{0xEF, 0xBB, 0xBF}, "hello"...)})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestTextInvalidUTF8(t *testing.T) {
	got, err := Text(Upload{Name: "latin1.txt", Data: []byte{'c', 'a', 'f', 0xE9}})

	assert.Empty(t, got)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "txt", extErr.Ext)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestTextUnsupported(t *testing.T) {
	for _, name := range []string{"photo.png", "Main.java", "sheet.xlsx", "legacy.doc", "noext"} {
		t.Run(name, func(t *testing.T) {
			got, err := Text(Upload{Name: name, Data: []byte("whatever")})
			assert.Empty(t, got)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestTextPDFPagesInOrder(t *testing.T) {
	data := buildPDF(t, []string{"Page one text.", "", "Page three text."})

	got, err := Text(Upload{Name: "lecture.pdf", Data: data})

	require.NoError(t, err)
	assert.Equal(t, "Page one text."+""+"Page three text.", got)
}

func TestTextPDFImageOnly(t *testing.T) {
	data := buildPDF(t, []string{"", ""})

	got, err := Text(Upload{Name: "scan.pdf", Data: data})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTextPDFPageTree(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		tree  pageTree
		want  string
	}{
		{
			name:  "count larger than kids",
			pages: []string{"Hello"},
			tree:  pageTree{Count: 3},
			want:  "Hello",
		},
		{
			name:  "huge count",
			pages: []string{"Hello", "World"},
			tree:  pageTree{Count: 2000000},
			want:  "HelloWorld",
		},
		{
			name:  "count smaller than kids",
			pages: []string{"One", "Two", "Three"},
			tree:  pageTree{Count: 1},
			want:  "OneTwoThree",
		},
		{
			name:  "kids point back at the tree",
			pages: []string{"Hello"},
			tree:  pageTree{ExtraKids: []string{"2 0 R", "2 0 R"}},
			want:  "Hello",
		},
		{
			name:  "page listed twice",
			pages: []string{"Hello"},
			tree:  pageTree{ExtraKids: []string{"4 0 R"}},
			want:  "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildPDFTree(t, tt.pages, tt.tree)

			got, err := Text(Upload{Name: "notes.pdf", Data: data})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextPDFCorrupt(t *testing.T) {
	_, err := Text(Upload{Name: "broken.pdf", Data: []byte("not a pdf at all")})

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "pdf", extErr.Ext)
}

func TestTextDOCX(t *testing.T) {
	data := buildDOCX(t, []string{"Photosynthesis converts light.", "Chlorophyll absorbs it."})

	got, err := Text(Upload{Name: "biology.docx", Data: data})

	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light.\nChlorophyll absorbs it.", got)
}

func TestTextDOCXCorrupt(t *testing.T) {
	_, err := Text(Upload{Name: "broken.docx", Data: []byte("PK not really")})

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "docx", extErr.Ext)
}

func TestTextIdempotent(t *testing.T) {
	uploads := []Upload{
		{Name: "a.txt", Data: []byte("same text")},
		{Name: "b.pdf", Data: buildPDF(t, []string{"Alpha", "Beta"})},
		{Name: "c.docx", Data: buildDOCX(t, []string{"Gamma"})},
	}
	for _, u := range uploads {
		t.Run(u.Name, func(t *testing.T) {
			first, err := Text(u)
			require.NoError(t, err)
			second, err := Text(u)
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.NotEmpty(t, first)
		})
	}
}

func TestBodyText(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="` + wordNS + `"><w:body>` +
		`<w:p><w:r><w:t>Name:</w:t></w:r><w:r><w:tab/><w:t>Ada</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := bodyText(xmlDoc)

	require.NoError(t, err)
	assert.Equal(t, "Name:\tAda\nline\nbreak", got)
}

func TestSupportedExtensionsMatchExtractors(t *testing.T) {
	exts := SupportedExtensions()
	assert.Len(t, exts, len(extractors))
	for _, ext := range exts {
		_, ok := extractors[ext]
		assert.True(t, ok, "missing extractor for %s", ext)
	}
}
