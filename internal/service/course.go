package service

import (
	"errors"

	"coursepay/internal/model"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseCatalog serves the static course list the site sells. The catalog
// ships with the binary; there is no admin surface for it.
type CourseCatalog struct {
	courses []model.Course
	bySlug  map[string]model.Course
}

func NewCourseCatalog() *CourseCatalog {
	c := &CourseCatalog{
		courses: defaultCourses,
		bySlug:  make(map[string]model.Course, len(defaultCourses)),
	}
	for _, course := range c.courses {
		c.bySlug[course.Slug] = course
	}
	return c
}

func (c *CourseCatalog) List() []model.Course {
	out := make([]model.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

func (c *CourseCatalog) Get(slug string) (model.Course, error) {
	course, ok := c.bySlug[slug]
	if !ok {
		return model.Course{}, ErrCourseNotFound
	}
	return course, nil
}

var defaultCourses = []model.Course{
	{Slug: "python-ds", Title: "Python for Data Science", StartDate: "February 15, 2026", Duration: "8 Weeks", Mode: "Hybrid (Live + Recorded)", Price: 2499},
	{Slug: "java-oop", Title: "OOP with Java", StartDate: "March 01, 2026", Duration: "6 Weeks", Mode: "Live Interactive", Price: 1999},
	{Slug: "linkedin-mastery", Title: "Complete LinkedIn Setup", StartDate: "Self-Paced", Duration: "2 Weeks", Mode: "Recorded + Live Review", Price: 499},
	{Slug: "learn-c", Title: "Mastering C Language", StartDate: "Self-Paced", Duration: "6 Weeks", Mode: "Recorded", Price: 1299},
	{Slug: "html-css", Title: "Learn Complete HTML/CSS", StartDate: "Self-Paced", Duration: "4 Weeks", Mode: "Recorded", Price: 999},
	{Slug: "ai-ml", Title: "AI/Machine Learning", StartDate: "April 10, 2026", Duration: "12 Weeks", Mode: "Live Interactive", Price: 4999},
	{Slug: "dsa", Title: "Data Structures & Algorithms", StartDate: "March 20, 2026", Duration: "10 Weeks", Mode: "Live Interactive", Price: 2999},
	{Slug: "data-science", Title: "Data Science Specialization", StartDate: "May 05, 2026", Duration: "16 Weeks", Mode: "Hybrid (Live + Recorded)", Price: 5499},
	{Slug: "web-development", Title: "Complete Web Development", StartDate: "April 01, 2026", Duration: "14 Weeks", Mode: "Live Interactive", Price: 5999},
}
