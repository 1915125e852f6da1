package domain

// ProductImage stores an uploaded catalog image. Name carries a random
// prefix to keep stored names unique; ShortName is the original filename.
type ProductImage struct {
	ID          int64
	ProductID   int64
	Name        string
	ShortName   string
	ContentType string
	Data        []byte
}
