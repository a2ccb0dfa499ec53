package services

import (
	"fmt"
	"net/url"
	"strconv"
)

const DefaultPageLimit = 6

// PageParams carries page-number pagination: `?page=<n>&limit=<m>`.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams reads page/limit from query values, falling back to the
// defaults on absent or garbage input.
func ParsePageParams(query url.Values) PageParams {
	p := PageParams{Page: 1, Limit: DefaultPageLimit}
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}

func (p PageParams) Offset() int { return (p.Page - 1) * p.Limit }

// Page is the list envelope the frontend expects.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// BuildPage assembles the envelope, with next/previous links relative to
// the request path.
func BuildPage(count int64, results interface{}, path string, p PageParams) Page {
	page := Page{Count: count, Results: results}

	lastPage := int((count + int64(p.Limit) - 1) / int64(p.Limit))
	if p.Page < lastPage {
		u := pageURL(path, p.Page+1, p.Limit)
		page.Next = &u
	}
	if p.Page > 1 && p.Page <= lastPage+1 {
		u := pageURL(path, p.Page-1, p.Limit)
		page.Previous = &u
	}
	return page
}

func pageURL(path string, page, limit int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", path, page, limit)
}
