package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coursepay/internal/service"
)

func ListCoursesHandler(catalog *service.CourseCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(catalog.List()); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func GetCourseHandler(catalog *service.CourseCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		course, err := catalog.Get(slug)
		if err != nil {
			if errors.Is(err, service.ErrCourseNotFound) {
				http.Error(w, "course not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(course); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
