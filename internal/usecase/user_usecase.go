package usecase

import (
	"context"
	"io"
	"time"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/internal/domain/service"
	"tripcollab/pkg/errors"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	fileService service.FileUploadService
	fileRepo    repository.FileMetadataRepository
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
	fileRepo repository.FileMetadataRepository,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		fileService: fileService,
		fileRepo:    fileRepo,
	}
}

type UpdateCreatorProfileInput struct {
	DisplayName string
	Bio         string
	HomeCountry string
	Niche       string
	Socials     *entity.SocialLinks
	Packages    []entity.CollabPackage
	RatePerPost float64
}

type UpdateBrandProfileInput struct {
	DisplayName string
	Bio         string
	HomeCountry string
	CompanyName string
	Website     string
	Industry    string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateCreatorProfile(ctx context.Context, userID string, input UpdateCreatorProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsCreator() {
		return nil, errors.Forbidden("Only creators can edit a creator profile", nil)
	}

	user.DisplayName = input.DisplayName
	user.Bio = input.Bio
	user.HomeCountry = input.HomeCountry
	user.Niche = input.Niche
	user.Socials = input.Socials
	user.Packages = input.Packages
	user.RatePerPost = input.RatePerPost

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) UpdateBrandProfile(ctx context.Context, userID string, input UpdateBrandProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsBrand() {
		return nil, errors.Forbidden("Only brands can edit a brand profile", nil)
	}

	user.DisplayName = input.DisplayName
	user.Bio = input.Bio
	user.HomeCountry = input.HomeCountry
	user.CompanyName = input.CompanyName
	user.Website = input.Website
	user.Industry = input.Industry

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadProfileImage stores a new avatar (creators) or logo (brands) and
// updates the profile to point at it. The previous image is deleted on a
// best-effort basis.
func (uc *UserUseCase) UploadProfileImage(ctx context.Context, userID string, file io.Reader, fileType, filename string, fileSize int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	folder := "profileImages/" + userID
	entityType := "profile"
	oldURL := user.AvatarURL
	if user.IsBrand() {
		folder = "brandLogos/" + userID
		entityType = "logo"
		oldURL = user.LogoURL
	}

	result, err := uc.fileService.UploadFile(ctx, file, fileType, filename, folder, true)
	if err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}

	if err := uc.fileRepo.Create(ctx, &entity.FileMetadata{
		URL:        result.URL,
		ObjectName: result.ObjectName,
		EntityType: entityType,
		EntityID:   userID,
		UploadedBy: userID,
		Filename:   filename,
		FileType:   fileType,
		FileSize:   result.Size,
		IsPublic:   true,
	}); err != nil {
		return nil, err
	}

	if user.IsBrand() {
		user.LogoURL = result.URL
	} else {
		user.AvatarURL = result.URL
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldURL != "" {
		// Old image is orphaned either way; ignore delete failures.
		_ = uc.fileService.DeleteFile(ctx, oldURL)
	}

	return user, nil
}

// TouchLastSeen records activity for the presence indicator.
func (uc *UserUseCase) TouchLastSeen(ctx context.Context, userID string, online bool) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.LastSeen = time.Now()
	user.OnlineStatus = "offline"
	if online {
		user.OnlineStatus = "online"
	}

	return uc.userRepo.Update(ctx, user)
}
