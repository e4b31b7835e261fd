package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Name: "Alice", Active: true}, nil)

		user, err := NewUserService(mockRepo, nil, quietLogger()).GetUser(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := NewUserService(mockRepo, nil, quietLogger()).GetUser(context.Background(), id)

		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	id := uuid.New()

	t.Run("updates editable fields", func(t *testing.T) {
		stored := &model.User{ID: id, Name: "Alice", Email: "alice@example.com"}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, stored).Return(nil)

		user, err := NewUserService(mockRepo, nil, quietLogger()).UpdateProfile(context.Background(), id, ProfileInput{
			Name: " Alice L. ", Bio: "Reads a lot", Country: "PT",
		})

		require.NoError(t, err)
		assert.Equal(t, "Alice L.", user.Name)
		assert.Equal(t, "Reads a lot", user.Bio)
		assert.Equal(t, "PT", user.Country)
		assert.Equal(t, "alice@example.com", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("name required", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		_, err := NewUserService(mockRepo, nil, quietLogger()).UpdateProfile(context.Background(), id, ProfileInput{})

		assert.ErrorIs(t, err, errors.ErrValidation)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound).Once()
	mockRepo.On("Delete", mock.Anything, id).Return(nil).Once()
	s := NewUserService(mockRepo, nil, quietLogger())

	assert.ErrorIs(t, s.DeleteUser(context.Background(), id), errors.ErrNotFound)
	assert.NoError(t, s.DeleteUser(context.Background(), id))
}

func TestUserService_DeleteUserDropsCachedCopy(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Name: "Alice", Active: true}, nil).Once()
	mockRepo.On("Delete", mock.Anything, id).Return(nil)
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	mr, cacheClient := newTestCache(t)
	s := NewUserService(mockRepo, cacheClient, quietLogger())

	_, err := s.GetUser(context.Background(), id)
	require.NoError(t, err)
	require.True(t, mr.Exists("user:"+id.String()))

	require.NoError(t, s.DeleteUser(context.Background(), id))
	assert.False(t, mr.Exists("user:"+id.String()))

	_, err = s.GetUser(context.Background(), id)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
