package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/storage"
)

// CourseRepository defines data access for user-authored courses
type CourseRepository interface {
	List(ctx context.Context) ([]domain.CustomCourse, error)
	Get(ctx context.Context, id string) (*domain.CustomCourse, error)
	Create(ctx context.Context, course domain.CustomCourse) (*domain.CustomCourse, error)
	Update(ctx context.Context, id string, patch domain.CoursePatch) (*domain.CustomCourse, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type courseRepositoryImpl struct {
	mu      sync.Mutex
	courses *storage.Collection[domain.CustomCourse]
	now     func() time.Time
}

// NewCourseRepository creates a new instance of CourseRepository
func NewCourseRepository(courses *storage.Collection[domain.CustomCourse]) CourseRepository {
	return &courseRepositoryImpl{
		courses: courses,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func indexOfCourse(courses []domain.CustomCourse, id string) int {
	return slices.IndexFunc(courses, func(c domain.CustomCourse) bool { return c.ID == id })
}

// List returns all courses, most recently modified first
func (r *courseRepositoryImpl) List(ctx context.Context) ([]domain.CustomCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.courses.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(courses, func(a, b domain.CustomCourse) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return courses, nil
}

// Get returns the course or nil
func (r *courseRepositoryImpl) Get(ctx context.Context, id string) (*domain.CustomCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.courses.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfCourse(courses, id)
	if idx < 0 {
		return nil, nil
	}
	return &courses[idx], nil
}

// Create stores a new course, assigning its id and timestamps
func (r *courseRepositoryImpl) Create(ctx context.Context, course domain.CustomCourse) (*domain.CustomCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.courses.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	course.ID = domain.NewID(domain.PrefixCourse)
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.Tags == nil {
		course.Tags = []string{}
	}
	courses = append(courses, course)

	if err := r.courses.WriteAll(ctx, courses); err != nil {
		return nil, err
	}
	return &course, nil
}

// Update applies a partial patch; id and createdAt never change
func (r *courseRepositoryImpl) Update(ctx context.Context, id string, patch domain.CoursePatch) (*domain.CustomCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.courses.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfCourse(courses, id)
	if idx < 0 {
		return nil, nil
	}

	patch.Apply(&courses[idx], r.now())
	updated := courses[idx]

	if err := r.courses.WriteAll(ctx, courses); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the course
func (r *courseRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.courses.ReadAll(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOfCourse(courses, id)
	if idx < 0 {
		return false, nil
	}

	courses = slices.Delete(courses, idx, idx+1)
	if err := r.courses.WriteAll(ctx, courses); err != nil {
		return false, err
	}
	return true, nil
}
