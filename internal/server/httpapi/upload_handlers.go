package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/libhub/internal/common"
)

// multipartOverhead is allowed on top of the file size limit for the
// multipart framing and the other form fields.
const multipartOverhead = 64 << 10

func (a *API) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.uploads.MaxSize()+multipartOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.writeError(w, r, common.Fail(common.ErrFileTooLarge, fmt.Sprintf("File too large (max %dMB)", a.uploads.MaxSize()>>20)))
			return
		}
		writeFail(w, http.StatusBadRequest, "No image uploaded")
		return
	}
	defer file.Close()

	url, err := a.uploads.Store(r.Context(), identity(r), file, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "image uploaded", "url", url, "size", header.Size, "user_id", identity(r).UserID)
	writeOK(w, http.StatusOK, "Image uploaded successfully", map[string]string{"imageUrl": url})
}
