package models

// FeeType represents a named fee category (tuition, sports, library, ...)
type FeeType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
