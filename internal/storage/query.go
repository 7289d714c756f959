package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ikolcov/masterblog/internal/models"
)

const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// SearchFields lists the searchable fields in query-parameter priority order.
var SearchFields = []string{models.FieldTitle, models.FieldContent, models.FieldAuthor, models.FieldDateCreated}

// SortPosts returns a copy of posts stably ordered by key. An empty
// direction sorts ascending.
func SortPosts(posts []models.Post, key string, direction string) ([]models.Post, error) {
	if !contains(models.EditableFields, key) {
		return nil, fmt.Errorf("%w: cannot sort by %q", models.ErrValidation, key)
	}
	desc := false
	switch direction {
	case "", DirectionAsc:
	case DirectionDesc:
		desc = true
	default:
		return nil, fmt.Errorf("%w: direction must be %s or %s", models.ErrValidation, DirectionAsc, DirectionDesc)
	}

	sorted := append(make([]models.Post, 0, len(posts)), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := sorted[i].Field(key)
		b, _ := sorted[j].Field(key)
		if desc {
			return a > b
		}
		return a < b
	})
	return sorted, nil
}

// SearchPosts returns the posts whose field contains term, ignoring case,
// in their original order.
func SearchPosts(posts []models.Post, field string, term string) ([]models.Post, error) {
	if !contains(SearchFields, field) {
		return nil, fmt.Errorf("%w: cannot search by %q", models.ErrValidation, field)
	}

	needle := strings.ToLower(term)
	matches := make([]models.Post, 0)
	for _, post := range posts {
		value, _ := post.Field(field)
		if strings.Contains(strings.ToLower(value), needle) {
			matches = append(matches, post)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no posts with %s matching %q", models.ErrNotFound, field, term)
	}
	return matches, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
