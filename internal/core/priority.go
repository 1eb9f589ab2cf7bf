package core

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/md-task/pkg/models"
)

// ParsePriority converts a user-supplied priority name into a Priority.
// Matching ignores case and surrounding whitespace.
func ParsePriority(s string) (models.Priority, error) {
	p := models.Priority(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range models.Priorities {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q: use high, medium, or low", ErrInvalidPriority, s)
}
