package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/iliyamo/wedding-hall-booking/internal/utils"
)

// Upload limits: 2MB profile pictures, 5MB hall images.
const (
	maxProfilePictureSize = 2 << 20
	maxHallImageSize      = 5 << 20
)

// allowedImageTypes is the whitelist of declared content types accepted for
// any image upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	errUploadTooLarge = errors.New("file exceeds the maximum allowed size")
	errUploadBadType  = errors.New("invalid file type, only images are allowed")
)

// saveUpload validates and persists one uploaded file under
// <root>/<subdir>/ and returns the public URL path it will be served from
// (/uploads/<subdir>/<name>). Validation uses the declared size and content
// type; the stored name is server-generated so uploads cannot collide or
// escape the upload directory.
func saveUpload(fh *multipart.FileHeader, root, subdir, prefix string, userID uint64, maxSize int64) (string, error) {
	if fh.Size > maxSize {
		return "", errUploadTooLarge
	}
	if !allowedImageTypes[fh.Header.Get("Content-Type")] {
		return "", errUploadBadType
	}

	name, err := utils.UploadFileName(prefix, userID, fh.Filename)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, maxSize+1)); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + name, nil
}
