package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for keys that would escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage stores project cover images.
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はストレージ内の一意パス (例: "projects/<id>/<hex>.jpg")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete は key に対応するファイルを削除する。存在しない場合は nil。
	Delete(ctx context.Context, key string) error

	// KeyFromURL maps a URL returned by Save back to its key.
	// ok is false for URLs this storage did not issue.
	KeyFromURL(url string) (key string, ok bool)
}
