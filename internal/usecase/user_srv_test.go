package usecase

import (
	"context"
	"testing"
	"time"

	"course-platform/internal/data/entity"
	"course-platform/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGetProfile(t *testing.T) {
	repo := newTestRepository()
	service := NewUserService(repo, zaptest.NewLogger(t))

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Role:  entity.RoleStudent,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))

	course := seedPublishedCourse(t, repo.Course)
	require.NoError(t, repo.Enrollment.Create(context.Background(), &entity.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}))

	resp, err := service.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", resp.User.Name)
	require.Len(t, resp.EnrolledCourses, 1)
	assert.Equal(t, course.Title, resp.EnrolledCourses[0].Title)
}

func TestGetProfileUnknownUser(t *testing.T) {
	repo := newTestRepository()
	service := NewUserService(repo, zaptest.NewLogger(t))

	_, err := service.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateProfile(t *testing.T) {
	repo := newTestRepository()
	service := NewUserService(repo, zaptest.NewLogger(t))

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Role:  entity.RoleStudent,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))

	newName := "Ada L."
	photo := "https://cdn.example.com/p/ada.png"
	resp, err := service.UpdateProfile(context.Background(), user.ID, &request.UpdateProfileRequest{
		Name:     &newName,
		PhotoURL: &photo,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", resp.Name)
	require.NotNil(t, resp.PhotoURL)
	assert.Equal(t, photo, *resp.PhotoURL)
}
