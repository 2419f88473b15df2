package service

import (
	"context"
	"path"
	"strings"
	"testing"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"
	"gym-management-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequestAvatarUploadURL(t *testing.T) {
	userRepo := new(mockUserRepo)
	fileStorage := new(mockFileStorage)
	svc := NewUserService(userRepo, fileStorage)

	userID := primitive.NewObjectID()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
	fileStorage.On("GeneratePresignedUploadURL", mock.Anything, mock.AnythingOfType("string"), "image/png", storage.DefaultPresignedURLExpiry).
		Return("https://storage.example/presigned-put", nil)

	resp, err := svc.RequestAvatarUploadURL(context.Background(), userID, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://storage.example/presigned-put", resp.UploadURL)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, path.Join("avatars", userID.Hex())+"/"))
	assert.True(t, strings.HasSuffix(resp.ObjectKey, ".png"))
}

func TestRequestAvatarUploadURLRejectsContentType(t *testing.T) {
	svc := NewUserService(new(mockUserRepo), new(mockFileStorage))

	_, err := svc.RequestAvatarUploadURL(context.Background(), primitive.NewObjectID(), "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedAvatar)
}

func TestConfirmAvatarReplacesPrevious(t *testing.T) {
	userRepo := new(mockUserRepo)
	fileStorage := new(mockFileStorage)
	svc := NewUserService(userRepo, fileStorage)

	userID := primitive.NewObjectID()
	prevKey := path.Join("avatars", userID.Hex(), "old.png")
	newKey := path.Join("avatars", userID.Hex(), "new.png")

	userRepo.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Profile: domain.Profile{Avatar: prevKey}}, nil)
	fileStorage.On("DeleteObject", mock.Anything, prevKey).Return(nil)
	userRepo.On("SetAvatar", mock.Anything, userID, newKey).Return(nil)

	_, err := svc.ConfirmAvatar(context.Background(), userID, newKey)
	require.NoError(t, err)
	fileStorage.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestConfirmAvatarRejectsForeignKey(t *testing.T) {
	svc := NewUserService(new(mockUserRepo), new(mockFileStorage))

	userID := primitive.NewObjectID()
	otherKey := path.Join("avatars", primitive.NewObjectID().Hex(), "sneaky.png")

	_, err := svc.ConfirmAvatar(context.Background(), userID, otherKey)
	assert.ErrorIs(t, err, ErrUnsupportedAvatar)
}

func TestAvatarDownloadURL(t *testing.T) {
	userRepo := new(mockUserRepo)
	fileStorage := new(mockFileStorage)
	svc := NewUserService(userRepo, fileStorage)

	userID := primitive.NewObjectID()
	key := path.Join("avatars", userID.Hex(), "pic.jpg")

	userRepo.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Profile: domain.Profile{Avatar: key}}, nil)
	fileStorage.On("GeneratePresignedDownloadURL", mock.Anything, key, storage.DefaultPresignedURLExpiry).
		Return("https://storage.example/presigned-get", nil)

	url, err := svc.AvatarDownloadURL(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/presigned-get", url)
}

func TestAvatarDownloadURLWithoutUpload(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, new(mockFileStorage))

	userID := primitive.NewObjectID()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

	_, err := svc.AvatarDownloadURL(context.Background(), userID)
	assert.ErrorIs(t, err, ErrAvatarNotUploaded)
}

func TestGetByIDScrubsPasswordHash(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, new(mockFileStorage))

	userID := primitive.NewObjectID()
	userRepo.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, PasswordHash: "$2a$10$secret"}, nil)

	user, err := svc.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestGetByIDNotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo, new(mockFileStorage))

	userID := primitive.NewObjectID()
	userRepo.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrNotFound)

	_, err := svc.GetByID(context.Background(), userID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
