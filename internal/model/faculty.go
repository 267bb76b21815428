package model

import "time"

// Faculty is a staff member who can be assigned to courses.
type Faculty struct {
	ID            int    `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Qualification string `json:"qualification"`
	DateJoined    Date   `json:"date_joined"`
}

// FacultyListing is one faculty member joined with one course they teach.
// Course fields are nil for unassigned faculty in the admin listing.
type FacultyListing struct {
	FacultyID     int          `json:"faculty_id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Qualification string       `json:"qualification"`
	DateJoined    Date         `json:"date_joined"`
	CourseID      *string      `json:"course_id"`
	CourseName    *string      `json:"course_name"`
	Level         *CourseLevel `json:"level"`
}

// FacultyRequest is the payload for creating or updating a faculty member.
// An empty DateJoined means today on create and "unchanged" on update.
type FacultyRequest struct {
	FirstName     string `json:"first_name" binding:"required,notblank,max=100"`
	LastName      string `json:"last_name" binding:"required,notblank,max=100"`
	Qualification string `json:"qualification" binding:"required,notblank,max=255"`
	DateJoined    string `json:"date_joined" binding:"omitempty,datetime=2006-01-02"`
}

// ParsedDateJoined returns the requested join date, or nil when none was sent.
func (r FacultyRequest) ParsedDateJoined() *time.Time {
	if r.DateJoined == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, r.DateJoined)
	if err != nil {
		return nil
	}
	return &d
}

// FacultyCourse links a faculty member to a course they teach.
type FacultyCourse struct {
	FacultyID int    `json:"faculty_id"`
	CourseID  string `json:"course_id"`
}

// CreateFacultyCourseRequest is the payload for assigning a course to a faculty member.
type CreateFacultyCourseRequest struct {
	FacultyID int    `json:"faculty_id" binding:"required,min=1"`
	CourseID  string `json:"course_id" binding:"required,notblank,max=32"`
}
