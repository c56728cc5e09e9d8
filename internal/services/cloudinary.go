package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// resource types tried on delete, the upload uses "auto" so the stored type
// is not known up front.
var cloudinaryResourceTypes = []string{"image", "raw", "video"}

type CloudinaryMedia struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryMedia(cloudName, apiKey, apiSecret string) (*CloudinaryMedia, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryMedia{cld: cld}, nil
}

func (s *CloudinaryMedia) Upload(ctx context.Context, r io.Reader, _ string, folder string) (models.Asset, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return models.Asset{}, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return models.Asset{}, fmt.Errorf("failed to upload to Cloudinary: %s", res.Error.Message)
	}
	return models.Asset{PublicID: res.PublicID, URL: res.SecureURL}, nil
}

func (s *CloudinaryMedia) Delete(ctx context.Context, publicID string) error {
	for _, rt := range cloudinaryResourceTypes {
		res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     publicID,
			ResourceType: rt,
		})
		if err != nil {
			return fmt.Errorf("failed to delete %s from Cloudinary: %w", publicID, err)
		}
		if res.Error.Message != "" {
			return errors.New(res.Error.Message)
		}
		if res.Result == "ok" {
			return nil
		}
	}
	// "not found" for every type: already gone.
	return nil
}
