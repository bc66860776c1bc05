package detection

import "image"

// Word is one recognized word with its location in the source image.
type Word struct {
	Box        image.Rectangle `json:"box"`
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"` // 0-100
}
