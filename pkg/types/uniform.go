package types

// Uniform is a catalogued garment: a type in a size. Duplicate
// (type, size) pairs are permitted.
type Uniform struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Size string `json:"size"`
}
