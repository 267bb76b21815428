package model

// CourseLevel is the difficulty tier of a course.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

// Rank orders levels beginner < intermediate < advanced. Unknown levels rank last.
func (l CourseLevel) Rank() int {
	switch l {
	case CourseLevelBeginner:
		return 1
	case CourseLevelIntermediate:
		return 2
	case CourseLevelAdvanced:
		return 3
	default:
		return 4
	}
}

// Course is a class offered to students. The ID is an admin-chosen code.
type Course struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Level CourseLevel `json:"level"`
}

// CourseListing is one course joined with one of its assigned faculty members.
// Faculty fields are nil for unassigned courses in the admin listing.
type CourseListing struct {
	CourseID   string      `json:"course_id"`
	CourseName string      `json:"course_name"`
	Level      CourseLevel `json:"level"`
	FacultyID  *int        `json:"faculty_id"`
	FirstName  *string     `json:"first_name"`
	LastName   *string     `json:"last_name"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	ID    string      `json:"id" binding:"required,notblank,max=32"`
	Name  string      `json:"name" binding:"required,notblank,max=150"`
	Level CourseLevel `json:"level" binding:"required,oneof=beginner intermediate advanced"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Name  string      `json:"name" binding:"required,notblank,max=150"`
	Level CourseLevel `json:"level" binding:"required,oneof=beginner intermediate advanced"`
}
