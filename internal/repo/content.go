package repo

// ContentStore - набор запросов только на чтение, из которых строится аналитика дашборда
type ContentStore interface {
	PostReader
	CommentReader
	CategoryReader
	PageReader
	UserReader
}

type contentStore struct {
	PostReader
	CommentReader
	CategoryReader
	PageReader
	UserReader
}

// NewContentStore собирает ContentStore из репозиториев отдельных сущностей
func NewContentStore(posts PostReader, comments CommentReader, categories CategoryReader, pages PageReader, users UserReader) ContentStore {
	return &contentStore{
		PostReader:     posts,
		CommentReader:  comments,
		CategoryReader: categories,
		PageReader:     pages,
		UserReader:     users,
	}
}
