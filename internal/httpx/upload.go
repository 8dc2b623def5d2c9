package httpx

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/pkg/errors"
)

const (
	uploadField    = "image"
	maxUploadBytes = 5 << 20
	msgNotImage    = "Only images are allowed"
)

var imageTypes = regexp.MustCompile(`jpg|jpeg|png`)

// isImage needs both the file extension and the declared content type to name
// a jpeg or png.
func isImage(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != "" && imageTypes.MatchString(ext) && imageTypes.MatchString(strings.ToLower(contentType))
}

func (a *API) upload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, hdr, err := r.FormFile(uploadField)
	if err != nil {
		return apperr.Validation(msgNotImage)
	}
	defer file.Close()

	if !isImage(hdr.Filename, hdr.Header.Get("Content-Type")) {
		return apperr.Validation(msgNotImage)
	}

	if err := os.MkdirAll(a.UploadDir, 0o755); err != nil {
		return errors.Wrap(err, "create upload dir")
	}
	name := fmt.Sprintf("%s-%d%s", uploadField, a.Now().UnixMilli(), strings.ToLower(filepath.Ext(hdr.Filename)))
	dst, err := os.Create(filepath.Join(a.UploadDir, name))
	if err != nil {
		return errors.Wrap(err, "create upload")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return errors.Wrap(err, "write upload")
	}
	writeText(w, http.StatusOK, "/uploads/"+name)
	return nil
}
