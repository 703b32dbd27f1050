package paging

import "errors"

var ErrInvalidPage = errors.New("offset must be non-negative and limit positive")

// Page translates an absolute item offset plus a page size into the
// page-index form that paged data sources understand. It is the single
// place where offset arithmetic happens, so every query paginates the
// same way.
//
// Note the index is floored: offset 7 with limit 5 lands on page 1
// (items 5-9), not a slice starting exactly at 7. Clients are expected
// to send page-aligned offsets; non-aligned offsets snap to the
// containing page. This is intentional and must not be "fixed".
type Page struct {
	offset int
	limit  int
}

// Of builds a Page from an absolute offset and a page size.
func Of(offset, limit int) (Page, error) {
	if offset < 0 || limit <= 0 {
		return Page{}, ErrInvalidPage
	}
	return Page{offset: offset, limit: limit}, nil
}

// Index returns the zero-based page index containing the offset.
func (p Page) Index() int {
	return p.offset / p.limit
}

// Size returns the page size.
func (p Page) Size() int {
	return p.limit
}

// Offset returns the absolute offset the page was built from.
func (p Page) Offset() int {
	return p.offset
}

// Next returns a page advanced by one page size.
func (p Page) Next() Page {
	return Page{offset: p.offset + p.limit, limit: p.limit}
}

// PreviousOrFirst returns the previous page, clamped at offset zero.
func (p Page) PreviousOrFirst() Page {
	offset := p.offset - p.limit
	if offset < 0 {
		offset = 0
	}
	return Page{offset: offset, limit: p.limit}
}

// First returns the page at offset zero with the same size.
func (p Page) First() Page {
	return Page{offset: 0, limit: p.limit}
}
