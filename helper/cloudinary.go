package helper

import (
	"context"
	"fmt"
	"io"
	"time"

	"restaurant_pos/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores product images and menu documents on Cloudinary.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

func InitCloudinary(cfg config.Cloudinary) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Uploader{cld: cld}, nil
}

// UploadImage stores an image and returns its public https URL.
func (u *Uploader) UploadImage(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	return u.upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		ResourceType: "image",
	})
}

// UploadDocument stores a non-image file (menu PDF) as a raw resource.
func (u *Uploader) UploadDocument(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	return u.upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		ResourceType: "raw",
	})
}

func (u *Uploader) upload(ctx context.Context, r io.Reader, params uploader.UploadParams) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}
