// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package paginate slices ordered result sets into fixed-size pages.
// Page boundaries are computed purely from the current item count at
// request time; no cursor state survives between requests, so listings
// stay stable under concurrent insertion.
package paginate

import (
	"net/http"
	"strconv"
)

// PerPage is the fixed window size for every paginated listing.
const PerPage = 10

// Page describes one window of an ordered result set. Number is 1-based
// and always within [1, TotalPages] (or 1 when the set is empty).
type Page struct {
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
}

// New builds a Page for the given total item count and requested page
// number. Out-of-range requests are clamped: anything below 1 becomes
// page 1, anything past the end becomes the last page.
func New(totalItems, number int) Page {
	totalPages := (totalItems + PerPage - 1) / PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		PerPage:    PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// FromRequest builds a Page from the "page" query parameter of a request.
// A missing or non-numeric parameter selects page 1.
func FromRequest(r *http.Request, totalItems int) Page {
	number, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		number = 1
	}
	return New(totalItems, number)
}

// Offset returns the zero-based index of the first item in this window,
// suitable for SQL OFFSET.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit returns the window size, suitable for SQL LIMIT.
func (p Page) Limit() int {
	return p.PerPage
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// NextNumber returns the next page number (valid only when HasNext).
func (p Page) NextNumber() int {
	return p.Number + 1
}

// PrevNumber returns the previous page number (valid only when HasPrev).
func (p Page) PrevNumber() int {
	return p.Number - 1
}

// ItemsOn returns how many items the current window holds.
func (p Page) ItemsOn() int {
	remaining := p.TotalItems - p.Offset()
	if remaining < 0 {
		return 0
	}
	if remaining > p.PerPage {
		return p.PerPage
	}
	return remaining
}
