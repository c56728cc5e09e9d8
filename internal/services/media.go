package services

import (
	"context"
	"io"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// Media folders.
const (
	FolderProjects     = "PROJECTS"
	FolderSoftwareApps = "SOFTWARE_APPLICATIONS"
	FolderSkills       = "SKILLS"
	FolderAvatars      = "AVATARS"
	FolderResumes      = "MY_RESUME"
)

// Media stores binary assets with an external host.
type Media interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (models.Asset, error)
	// Delete releases publicID. Deleting a missing key is not an error.
	Delete(ctx context.Context, publicID string) error
}

// FileUpload is a file received from a client.
type FileUpload struct {
	Filename string
	Body     io.Reader
}

type assetKeeper struct {
	media Media
}

func (a assetKeeper) upload(ctx context.Context, f *FileUpload, folder, what string) (models.Asset, error) {
	asset, err := a.media.Upload(ctx, f.Body, f.Filename, folder)
	if err != nil {
		return models.Asset{}, apperrors.Upload("Failed to upload "+what, err)
	}
	return asset, nil
}

// release deletes asset. Failures are logged, the caller has already
// committed its write.
func (a assetKeeper) release(ctx context.Context, asset models.Asset) {
	if asset.IsZero() {
		return
	}
	if err := a.media.Delete(ctx, asset.PublicID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("public_id", asset.PublicID).
			Msg("failed to release media asset")
	}
}
