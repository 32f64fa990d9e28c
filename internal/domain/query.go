package domain

import (
	"net/url"
	"strconv"
)

// Values encodes the query into URL parameters. Zero values are
// omitted, matching what the remote API expects; url.Values.Encode
// sorts keys, so the encoding is deterministic and safe to use in
// cache keys.
func (q CategoryQuery) Values() url.Values {
	v := url.Values{}
	if q.IncludeInactive {
		v.Set("includeInactive", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

// Values encodes the query into URL parameters, omitting zero values.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.IncludeInactive {
		v.Set("includeInactive", "true")
	}
	if q.CategoryID != "" {
		v.Set("categoryId", q.CategoryID)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.MinPrice > 0 {
		v.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Tags != "" {
		v.Set("tags", q.Tags)
	}
	if q.MinStock > 0 {
		v.Set("minStock", strconv.Itoa(q.MinStock))
	}
	if q.MaxStock > 0 {
		v.Set("maxStock", strconv.Itoa(q.MaxStock))
	}
	return v
}

// Values encodes the query into URL parameters, omitting zero values.
func (q OrderQuery) Values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return v
}
