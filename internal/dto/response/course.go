package response

import (
	"time"

	"course-platform/internal/data/entity"
)

type CourseResponse struct {
	ID           string             `json:"id"`
	InstructorID string             `json:"instructor_id"`
	Title        string             `json:"title"`
	Subtitle     *string            `json:"subtitle,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Category     string             `json:"category"`
	Level        entity.CourseLevel `json:"level"`
	Price        float64            `json:"price"`
	Currency     string             `json:"currency"`
	ThumbnailURL *string            `json:"thumbnail_url,omitempty"`
	Published    bool               `json:"published"`
	CreatedAt    time.Time          `json:"created_at"`
}

type LectureResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
	Position    int     `json:"position"`
	Preview     bool    `json:"preview"`
}

type CourseDetailResponse struct {
	CourseResponse
	Lectures []LectureResponse `json:"lectures"`
	Enrolled bool              `json:"enrolled"`
}

func CourseToResponse(course *entity.Course) CourseResponse {
	return CourseResponse{
		ID:           course.ID.String(),
		InstructorID: course.InstructorID.String(),
		Title:        course.Title,
		Subtitle:     course.Subtitle,
		Description:  course.Description,
		Category:     course.Category,
		Level:        course.Level,
		Price:        course.Price,
		Currency:     course.Currency,
		ThumbnailURL: course.ThumbnailURL,
		Published:    course.Published,
		CreatedAt:    course.CreatedAt,
	}
}

// LectureToResponse hides the video URL unless the caller may stream it
func LectureToResponse(lecture *entity.Lecture, withVideo bool) LectureResponse {
	resp := LectureResponse{
		ID:          lecture.ID.String(),
		Title:       lecture.Title,
		Description: lecture.Description,
		Position:    lecture.Position,
		Preview:     lecture.Preview,
	}

	if withVideo || lecture.Preview {
		resp.VideoURL = lecture.VideoURL
	}

	return resp
}
