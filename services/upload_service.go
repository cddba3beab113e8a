package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type UploadService struct {
	logger *gecho.Logger
	cfg    *structs.UploadConfig
}

func NewUploadService(logger *gecho.Logger, cfg *structs.Config) *UploadService {
	return &UploadService{
		logger: logger,
		cfg:    cfg.Upload,
	}
}

func (us *UploadService) Dir() string {
	return us.cfg.Dir
}

func (us *UploadService) PublicPath() string {
	return us.cfg.PublicPath
}

func (us *UploadService) MaxBytes() int64 {
	return us.cfg.MaxBytes
}

// SaveImage sniffs the content, downscales jpeg and png files wider than the
// configured maximum, and writes the result under a random name.
func (us *UploadService) SaveImage(src io.Reader, originalName string) (*UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(src, us.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > us.cfg.MaxBytes {
		return nil, lib.NewValidationError(map[string]string{
			"file": fmt.Sprintf("must be at most %d MB", us.cfg.MaxBytes>>20),
		})
	}
	if len(data) == 0 {
		return nil, lib.NewValidationError(map[string]string{"file": "is required"})
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExtensions[ext] {
		return nil, lib.NewValidationError(map[string]string{"file": "must be a jpg, png, webp or gif image"})
	}

	mtype := mimetype.Detect(data)
	storedExt, ok := allowedImageTypes[baseMime(mtype.String())]
	if !ok {
		return nil, lib.NewValidationError(map[string]string{"file": "must be a jpg, png, webp or gif image"})
	}

	switch storedExt {
	case ".jpg", ".png":
		data, err = us.downscale(data, storedExt)
		if err != nil {
			return nil, lib.NewValidationError(map[string]string{"file": "could not be decoded"})
		}
	}

	if err := os.MkdirAll(us.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	filename := uuid.New().String() + storedExt
	if err := os.WriteFile(filepath.Join(us.cfg.Dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	us.logger.Info("Image uploaded",
		gecho.Field("filename", filename),
		gecho.Field("size", len(data)),
		gecho.Field("mime", mtype.String()),
	)

	return &UploadResult{
		URL:      path.Join(us.cfg.PublicPath, filename),
		Filename: filename,
		Size:     int64(len(data)),
		MimeType: baseMime(mtype.String()),
	}, nil
}

func (us *UploadService) downscale(data []byte, ext string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if us.cfg.MaxWidth == 0 || uint(img.Bounds().Dx()) <= us.cfg.MaxWidth {
		return data, nil
	}

	resized := resize.Resize(us.cfg.MaxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 80})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func baseMime(m string) string {
	base, _, _ := strings.Cut(m, ";")
	return strings.TrimSpace(base)
}
