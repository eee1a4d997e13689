package response

type LectureProgressResponse struct {
	LectureID string `json:"lecture_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
	Viewed    bool   `json:"viewed"`
}

type ProgressResponse struct {
	CourseID  string                    `json:"course_id"`
	Completed bool                      `json:"completed"`
	Viewed    int                       `json:"viewed"`
	Total     int                       `json:"total"`
	Lectures  []LectureProgressResponse `json:"lectures"`
}
