// Package ocr wraps the Tesseract OCR engine (via gosseract/v2) for the two
// reads the CTA detector needs: word boxes over a whole creative and a
// single-line read of one candidate region.
//
// # Prerequisites
//
// gosseract needs cgo, so the engine is only compiled with the tesseract tag:
//
//	go build -tags tesseract ./...
//
// Without the tag every read returns ErrUnavailable and Available reports
// false.
//
// The tagged build links against Tesseract and its language data:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng tesseract-ocr-tur
//   - macOS: brew install tesseract tesseract-lang
//
// Set Engine.TessdataPrefix (ATTENTION_TESSDATA_PREFIX) to use traineddata from
// a non-standard directory.
//
// # Confidence
//
// Word confidence is reported on Tesseract's 0-100 scale.
package ocr
