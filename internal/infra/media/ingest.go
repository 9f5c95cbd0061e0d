package media

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/studio540/bjj-analyzer/internal/domain/analysis"
)

// allowed video extensions, mirroring the uploader filter
var allowedExts = map[string]string{
	".mp4": "video/mp4",
	".mov": "video/quicktime",
	".avi": "video/x-msvideo",
}

// Ingestor writes uploaded video streams to scoped temp files.
type Ingestor struct {
	// Dir kosong berarti os.TempDir()
	Dir string
}

// Ingest validates the declared filename and persists the stream to a temp
// file. The returned cleanup func removes the file and must be called on
// every exit path of the request.
func (ing *Ingestor) Ingest(r io.Reader, filename string) (path string, mimeType string, cleanup func(), err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExts[ext]; !ok {
		return "", "", nil, fmt.Errorf("%w: %q (allowed: mp4, mov, avi)", analysis.ErrUnsupportedFormat, ext)
	}

	f, err := os.CreateTemp(ing.Dir, "upload-*"+ext)
	if err != nil {
		return "", "", nil, err
	}
	cleanup = func() { _ = os.Remove(f.Name()) }

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		cleanup()
		return "", "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", "", nil, err
	}

	return f.Name(), MIMEForPath(f.Name()), cleanup, nil
}

// MIMEForPath resolves the upload content type from the file extension,
// falling back to video/mp4 when the platform table has nothing better.
func MIMEForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := allowedExts[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = mt[:i]
		}
		return mt
	}
	return "video/mp4"
}
