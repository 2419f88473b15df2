package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"
	"gym-management-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAvatarNotUploaded = errors.New("user has no avatar uploaded")
	ErrUnsupportedAvatar = errors.New("unsupported avatar content type")
	ErrAvatarURLError    = errors.New("failed to generate avatar URL")
)

// AvatarUploadResponse returns the presigned PUT URL plus the object key the
// client must confirm with.
type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// UserService covers user self-service: profile reads/updates and the avatar
// upload flow over presigned object-storage URLs.
type UserService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.Profile) (*domain.User, error)

	RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUploadResponse, error)
	ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.User, error)
	AvatarDownloadURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.Profile) (*domain.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, id, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// RequestAvatarUploadURL issues a presigned PUT URL for an image upload. The
// object key is namespaced per user so a re-upload can be garbage-collected.
func (s *userService) RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUploadResponse, error) {
	ext, ok := avatarExtension(contentType)
	if !ok {
		return nil, ErrUnsupportedAvatar
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	objectKey := path.Join("avatars", userID.Hex(), uuid.NewString()+ext)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAvatarURLError, err)
	}

	return &AvatarUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatar records the uploaded object key on the user, deleting the
// previous avatar object if there was one.
func (s *userService) ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.User, error) {
	if !strings.HasPrefix(objectKey, path.Join("avatars", userID.Hex())+"/") {
		return nil, ErrUnsupportedAvatar
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if prev := user.Profile.Avatar; prev != "" && prev != objectKey {
		// Best effort; a leaked object is preferable to a failed confirm.
		_ = s.fileStorage.DeleteObject(ctx, prev)
	}

	if err := s.userRepo.SetAvatar(ctx, userID, objectKey); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

func (s *userService) AvatarDownloadURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.Profile.Avatar == "" {
		return "", ErrAvatarNotUploaded
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.Profile.Avatar, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAvatarURLError, err)
	}
	return url, nil
}

func avatarExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	}
	return "", false
}
