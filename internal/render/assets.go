package render

import (
	"embed"
	"io/fs"
	"mime"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// ErrAssetNotFound is returned for static paths with no embedded file.
var ErrAssetNotFound = errors.New("static asset not found")

//go:embed static templates
var files embed.FS

// Asset returns an embedded static file and its content type. name is
// relative to /static/, for example "css/app.css".
func Asset(name string) ([]byte, string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" || strings.Contains(name, "\\") {
		return nil, "", errors.Wrapf(ErrAssetNotFound, "%q", name)
	}

	data, err := fs.ReadFile(files, "static"+clean)
	if err != nil {
		return nil, "", errors.Wrapf(ErrAssetNotFound, "%q", name)
	}

	ctype := mime.TypeByExtension(path.Ext(clean))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	return data, ctype, nil
}

func mustAsset(name string) string {
	data, _, err := Asset(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}
