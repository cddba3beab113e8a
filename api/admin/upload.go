package admin

import (
	"errors"
	"net/http"

	"digistore_server/handling"

	"github.com/MonkyMars/gecho"
)

// UploadImage accepts a multipart "file" (or "image") field.
func (ar *AdminRoutesManager) UploadImage(w http.ResponseWriter, r *http.Request) {
	maxBytes := ar.uploadService.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			gecho.BadRequest(w, gecho.WithMessage("File terlalu besar"), gecho.Send())
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Invalid multipart form"), gecho.Send())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("image")
	}
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("No file uploaded"), gecho.Send())
		return
	}
	defer file.Close()

	result, err := ar.uploadService.SaveImage(file, header.Filename)
	if err != nil {
		handling.HandleError(err, "Failed to upload image", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image uploaded"),
		gecho.WithData(result),
		gecho.Send(),
	)
}
