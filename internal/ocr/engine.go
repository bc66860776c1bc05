package ocr

import "errors"

// DefaultLanguage reads Turkish and English creatives, the languages the CTA
// phrase lists cover.
const DefaultLanguage = "tur+eng"

// ErrUnavailable is returned by every read when the binary was built without
// the tesseract tag.
var ErrUnavailable = errors.New("tesseract OCR not compiled in (build with -tags tesseract)")

// Engine runs Tesseract through gosseract. A fresh client is created for every
// call, so an Engine is safe for concurrent use.
type Engine struct {
	// Language is a Tesseract language spec such as "eng" or "tur+eng".
	Language string
	// TessdataPrefix overrides the traineddata directory when set.
	TessdataPrefix string
}

// NewEngine returns an engine for the given language spec.
func NewEngine(language, tessdataPrefix string) *Engine {
	if language == "" {
		language = DefaultLanguage
	}
	return &Engine{Language: language, TessdataPrefix: tessdataPrefix}
}

// Available reports whether Tesseract support was compiled in.
func Available() bool {
	return available
}
