package response

type ProfileResponse struct {
	User            UserResponse     `json:"user"`
	EnrolledCourses []CourseResponse `json:"enrolled_courses"`
}
