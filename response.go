package htmlindex

import (
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ContentType is the media type of an assembled document.
const ContentType = "text/html; charset=utf-8"

// Response builds the document and wraps it in a 200 OK *http.Response.
// It consumes the Builder.
func (b *Builder) Response() *http.Response {
	doc := b.Build()
	header := make(http.Header)
	header.Set("Content-Type", ContentType)
	header.Set("Content-Length", strconv.Itoa(len(doc)))
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(doc)),
		ContentLength: int64(len(doc)),
	}
}

// WriteResponse builds the document and writes it to w with status 200.
// It consumes the Builder.
func (b *Builder) WriteResponse(w http.ResponseWriter) error {
	doc := b.Build()
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, err := io.WriteString(w, doc)
	return err
}
