package common

import "math"

type PaginationResult struct {
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	Count       int64       `json:"count"`
	CurrentPage int         `json:"currentPage"`
	NextPage    int         `json:"nextPage"`
	PrevPage    int         `json:"prevPage"`
	LastPage    int         `json:"lastPage"`
}

// PaginateResponse wraps a page of results with navigation metadata.
// A NextPage/PrevPage of 0 means no such page exists.
func PaginateResponse(data interface{}, total int64, page int, limit int, message string) PaginationResult {
	if message == "" {
		message = "success"
	}

	lastPage := 0
	if limit > 0 {
		lastPage = int(math.Ceil(float64(total) / float64(limit)))
	}

	nextPage := page + 1
	if nextPage > lastPage {
		nextPage = 0
	}

	prevPage := page - 1
	if prevPage < 1 {
		prevPage = 0
	}

	return PaginationResult{
		Message:     message,
		Data:        data,
		Count:       total,
		CurrentPage: page,
		NextPage:    nextPage,
		PrevPage:    prevPage,
		LastPage:    lastPage,
	}
}
