package model

type Course struct {
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	StartDate string  `json:"start_date"`
	Duration  string  `json:"duration"`
	Mode      string  `json:"mode"`
	Price     float64 `json:"price"` // INR
}
