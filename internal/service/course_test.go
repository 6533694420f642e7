package service

import (
	"errors"
	"testing"
)

func TestCourseCatalog(t *testing.T) {
	t.Parallel()

	catalog := NewCourseCatalog()

	courses := catalog.List()
	if len(courses) == 0 {
		t.Fatal("catalog is empty")
	}

	course, err := catalog.Get("dsa")
	if err != nil {
		t.Fatalf("Get(dsa): %v", err)
	}
	if course.Title != "Data Structures & Algorithms" {
		t.Errorf("title = %q", course.Title)
	}
	if course.Price != 2999 {
		t.Errorf("price = %v", course.Price)
	}

	_, err = catalog.Get("no-such-course")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}
