package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
)

var errBadQuery = errors.New("invalid query parameter")

// parseListQuery reads search, owner, limit and offset from the query string.
func parseListQuery(r *http.Request) (domain.ListQuery, error) {
	v := r.URL.Query()
	q := domain.ListQuery{
		Search:  v.Get("search"),
		OwnerID: v.Get("owner"),
	}

	var err error
	if q.Limit, err = parseNonNegative(v.Get("limit")); err != nil {
		return domain.ListQuery{}, fmt.Errorf("%w: limit %v", errBadQuery, err)
	}
	if q.Offset, err = parseNonNegative(v.Get("offset")); err != nil {
		return domain.ListQuery{}, fmt.Errorf("%w: offset %v", errBadQuery, err)
	}
	return q.Normalized(), nil
}

func parseNonNegative(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}
