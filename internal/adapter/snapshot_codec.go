package adapter

import (
	"encoding/json"
	"fmt"

	"bookshelf/internal/core/model"
)

// DefaultStoreKey is the key the snapshot lives under.
const DefaultStoreKey = "bookshelf-v1"

func encodeSnapshot(books []model.Book) ([]byte, error) {
	out := model.CloneBooks(books)
	for i := range out {
		if out[i].Comments == nil {
			out[i].Comments = []model.Comment{}
		}
	}
	return json.Marshal(out)
}

func decodeSnapshot(data []byte) ([]model.Book, error) {
	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w: %w", model.ErrSnapshotCorrupt, err)
	}
	for i := range books {
		if books[i].Comments == nil {
			books[i].Comments = []model.Comment{}
		}
	}
	return books, nil
}
