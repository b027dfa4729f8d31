package media

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object key prefixes per media kind.
const (
	KindAvatar     = "avatars"
	KindCoverImage = "covers"
	KindThumbnail  = "thumbnails"
	KindVideo      = "videos"
)

// ObjectKey builds a collision-free key "<kind>/<ownerID>/<uuid><ext>" that
// keeps the extension of the uploaded file name.
func ObjectKey(kind, ownerID, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(fileName, `\`, "/"))))
	if len(ext) > 10 {
		ext = ""
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return path.Join(kind, ownerID, id.String()+ext)
}
