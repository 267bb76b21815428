// Package storetest provides an in-memory implementation of the service
// store interfaces. It mirrors the ordering, filtering and conflict rules of
// the PostgreSQL repositories so service and handler tests can run without a
// database.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/repository"
)

// DB is a tiny in-memory database shared by the typed store views.
type DB struct {
	mu sync.Mutex

	courses       map[string]model.Course
	faculty       map[int]model.Faculty
	nextFacultyID int
	links         map[model.FacultyCourse]struct{}
	enquiries     map[int]model.Enquiry
	nextEnquiryID int
	credential    *model.AdminCredential

	clock time.Time

	// Fail, when set, is returned by every operation.
	Fail error
}

// New returns an empty DB whose clock starts at a fixed instant and advances
// one second per write, so created_at ordering is deterministic.
func New() *DB {
	return &DB{
		courses:       map[string]model.Course{},
		faculty:       map[int]model.Faculty{},
		nextFacultyID: 1,
		links:         map[model.FacultyCourse]struct{}{},
		enquiries:     map[int]model.Enquiry{},
		nextEnquiryID: 1,
		clock:         time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (db *DB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// Courses returns the course view.
func (db *DB) Courses() *Courses { return &Courses{db} }

// Faculty returns the faculty view.
func (db *DB) Faculty() *Faculty { return &Faculty{db} }

// Assignments returns the faculty-course view.
func (db *DB) Assignments() *Assignments { return &Assignments{db} }

// Enquiries returns the enquiry view.
func (db *DB) Enquiries() *Enquiries { return &Enquiries{db} }

// Credential returns the admin credential view.
func (db *DB) Credential() *Credential { return &Credential{db} }

// LinkCount reports the number of faculty-course links.
func (db *DB) LinkCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.links)
}

// SetPasswordHash installs (or replaces) the admin credential.
func (db *DB) SetPasswordHash(hash string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.credential = &model.AdminCredential{PasswordHash: hash, UpdatedAt: db.tick()}
}

// PasswordHash returns the stored hash, or "" if none exists.
func (db *DB) PasswordHash() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.credential == nil {
		return ""
	}
	return db.credential.PasswordHash
}

// ─── Courses ──────────────────────────────────────────────────────────────

type Courses struct{ db *DB }

func (s *Courses) ListPublic(ctx context.Context) ([]model.CourseListing, error) {
	return s.list(false)
}

func (s *Courses) ListAdmin(ctx context.Context) ([]model.CourseListing, error) {
	return s.list(true)
}

func (s *Courses) list(outer bool) ([]model.CourseListing, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}

	out := []model.CourseListing{}
	for _, c := range db.courses {
		matched := false
		for link := range db.links {
			if link.CourseID != c.ID {
				continue
			}
			f := db.faculty[link.FacultyID]
			id, first, last := f.ID, f.FirstName, f.LastName
			out = append(out, model.CourseListing{
				CourseID: c.ID, CourseName: c.Name, Level: c.Level,
				FacultyID: &id, FirstName: &first, LastName: &last,
			})
			matched = true
		}
		if outer && !matched {
			out = append(out, model.CourseListing{CourseID: c.ID, CourseName: c.Name, Level: c.Level})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CourseName != b.CourseName {
			return a.CourseName < b.CourseName
		}
		if a.Level.Rank() != b.Level.Rank() {
			return a.Level.Rank() < b.Level.Rank()
		}
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return deref(a.FirstName)+deref(a.LastName) < deref(b.FirstName)+deref(b.LastName)
	})
	return out, nil
}

func (s *Courses) GetByID(ctx context.Context, id string) (*model.Course, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	c, ok := db.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *Courses) Create(ctx context.Context, c *model.Course) (*model.Course, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	if _, exists := db.courses[c.ID]; exists {
		return nil, repository.ErrConflict
	}
	if c.Level.Rank() > model.CourseLevelAdvanced.Rank() {
		return nil, repository.ErrInvalidValue
	}
	db.courses[c.ID] = *c
	out := *c
	return &out, nil
}

func (s *Courses) Update(ctx context.Context, c *model.Course) (*model.Course, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	if _, exists := db.courses[c.ID]; !exists {
		return nil, repository.ErrNotFound
	}
	db.courses[c.ID] = *c
	out := *c
	return &out, nil
}

func (s *Courses) Delete(ctx context.Context, id string) (int64, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return 0, db.Fail
	}
	if _, exists := db.courses[id]; !exists {
		return 0, nil
	}
	delete(db.courses, id)
	for link := range db.links {
		if link.CourseID == id {
			delete(db.links, link)
		}
	}
	return 1, nil
}

// ─── Faculty ──────────────────────────────────────────────────────────────

type Faculty struct{ db *DB }

func (s *Faculty) ListPublic(ctx context.Context) ([]model.FacultyListing, error) {
	return s.list(false)
}

func (s *Faculty) ListAdmin(ctx context.Context) ([]model.FacultyListing, error) {
	return s.list(true)
}

func (s *Faculty) list(outer bool) ([]model.FacultyListing, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}

	out := []model.FacultyListing{}
	for _, f := range db.faculty {
		base := model.FacultyListing{
			FacultyID: f.ID, FirstName: f.FirstName, LastName: f.LastName,
			Qualification: f.Qualification, DateJoined: f.DateJoined,
		}
		matched := false
		for link := range db.links {
			if link.FacultyID != f.ID {
				continue
			}
			c := db.courses[link.CourseID]
			row := base
			id, name, level := c.ID, c.Name, c.Level
			row.CourseID, row.CourseName, row.Level = &id, &name, &level
			out = append(out, row)
			matched = true
		}
		if outer && !matched {
			out = append(out, base)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FacultyID != b.FacultyID {
			return a.FacultyID < b.FacultyID
		}
		return deref(a.CourseName) < deref(b.CourseName)
	})
	return out, nil
}

func (s *Faculty) GetByID(ctx context.Context, id int) (*model.Faculty, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	f, ok := db.faculty[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (s *Faculty) Create(ctx context.Context, f *model.Faculty, dateJoined *time.Time) (*model.Faculty, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	out := *f
	out.ID = db.nextFacultyID
	db.nextFacultyID++
	if dateJoined != nil {
		out.DateJoined = model.Date{Time: *dateJoined}
	} else {
		out.DateJoined = model.Date{Time: db.clock.Truncate(24 * time.Hour)}
	}
	db.faculty[out.ID] = out
	return &out, nil
}

func (s *Faculty) Update(ctx context.Context, f *model.Faculty, dateJoined *time.Time) (*model.Faculty, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	existing, ok := db.faculty[f.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *f
	out.DateJoined = existing.DateJoined
	if dateJoined != nil {
		out.DateJoined = model.Date{Time: *dateJoined}
	}
	db.faculty[f.ID] = out
	return &out, nil
}

func (s *Faculty) Delete(ctx context.Context, id int) (int64, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return 0, db.Fail
	}
	if _, ok := db.faculty[id]; !ok {
		return 0, nil
	}
	delete(db.faculty, id)
	for link := range db.links {
		if link.FacultyID == id {
			delete(db.links, link)
		}
	}
	return 1, nil
}

// ─── Faculty-course links ─────────────────────────────────────────────────

type Assignments struct{ db *DB }

func (s *Assignments) Create(ctx context.Context, link model.FacultyCourse) (*model.FacultyCourse, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	if _, ok := db.faculty[link.FacultyID]; !ok {
		return nil, repository.ErrReferenceMissing
	}
	if _, ok := db.courses[link.CourseID]; !ok {
		return nil, repository.ErrReferenceMissing
	}
	if _, exists := db.links[link]; exists {
		return nil, repository.ErrConflict
	}
	db.links[link] = struct{}{}
	out := link
	return &out, nil
}

func (s *Assignments) Delete(ctx context.Context, link model.FacultyCourse) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return db.Fail
	}
	if _, exists := db.links[link]; !exists {
		return repository.ErrNotFound
	}
	delete(db.links, link)
	return nil
}

// ─── Enquiries ────────────────────────────────────────────────────────────

type Enquiries struct{ db *DB }

func (s *Enquiries) ListPublic(ctx context.Context) ([]model.Enquiry, error) {
	return s.list(func(e model.Enquiry) bool {
		return e.IsAnswered && e.IsVisible != nil && *e.IsVisible
	})
}

func (s *Enquiries) ListAdmin(ctx context.Context) ([]model.Enquiry, error) {
	return s.list(func(model.Enquiry) bool { return true })
}

func (s *Enquiries) list(keep func(model.Enquiry) bool) ([]model.Enquiry, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	out := []model.Enquiry{}
	for _, e := range db.enquiries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Enquiries) GetByID(ctx context.Context, id int) (*model.Enquiry, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	e, ok := db.enquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (s *Enquiries) Create(ctx context.Context, name, question string) (*model.Enquiry, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	e := model.Enquiry{
		ID:        db.nextEnquiryID,
		Name:      name,
		Question:  question,
		CreatedAt: db.tick(),
	}
	db.nextEnquiryID++
	db.enquiries[e.ID] = e
	return &e, nil
}

func (s *Enquiries) Answer(ctx context.Context, id int, answer string, visible bool) (*model.Enquiry, error) {
	return s.update(id, func(e *model.Enquiry, now time.Time) {
		e.Answer = &answer
		e.IsAnswered = true
		e.AnsweredAt = &now
		e.IsVisible = &visible
	})
}

func (s *Enquiries) Unanswer(ctx context.Context, id int, visible bool) (*model.Enquiry, error) {
	return s.update(id, func(e *model.Enquiry, _ time.Time) {
		e.Answer = nil
		e.IsAnswered = false
		e.AnsweredAt = nil
		e.IsVisible = &visible
	})
}

func (s *Enquiries) update(id int, apply func(*model.Enquiry, time.Time)) (*model.Enquiry, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	e, ok := db.enquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	apply(&e, db.tick())
	db.enquiries[id] = e
	return &e, nil
}

func (s *Enquiries) Delete(ctx context.Context, id int) (int64, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return 0, db.Fail
	}
	if _, ok := db.enquiries[id]; !ok {
		return 0, nil
	}
	delete(db.enquiries, id)
	return 1, nil
}

// ─── Admin credential ─────────────────────────────────────────────────────

type Credential struct{ db *DB }

func (s *Credential) Get(ctx context.Context) (*model.AdminCredential, error) {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return nil, db.Fail
	}
	if db.credential == nil {
		return nil, repository.ErrNotFound
	}
	c := *db.credential
	return &c, nil
}

func (s *Credential) ReplacePasswordHash(ctx context.Context, oldHash, newHash string) error {
	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.Fail != nil {
		return db.Fail
	}
	if db.credential == nil || db.credential.PasswordHash != oldHash {
		return repository.ErrConflict
	}
	db.credential = &model.AdminCredential{PasswordHash: newHash, UpdatedAt: db.tick()}
	return nil
}

// ErrUnavailable is a convenient value for DB.Fail.
var ErrUnavailable = errors.New("storetest: database unavailable")

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
