// Package upload stores multipart file uploads on local disk under uuid
// prefixed names, mirroring how the upload directory is served statically
// at /uploads.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Save writes the uploaded file into dir (plus optional subdir) and returns
// the path relative to dir, suitable for appending to "/uploads/".
func Save(dir, subdir string, fh *multipart.FileHeader) (string, error) {
	target := dir
	if subdir != "" {
		target = filepath.Join(dir, subdir)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + sanitizeExt(fh.Filename)
	dst, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	if subdir != "" {
		return subdir + "/" + name, nil
	}
	return name, nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	// Drop anything that is not a plain extension.
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
