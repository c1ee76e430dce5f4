package page

import (
	"fmt"
	"strings"

	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
)

// GeneratePageIDs names the pages of process number proc as "P<proc>-<i>".
func GeneratePageIDs(proc int, count int) []util.PageID {
	ids := make([]util.PageID, count)
	for i := range count {
		ids[i] = util.PageID(fmt.Sprintf("P%d-%d", proc, i))
	}
	return ids
}

// NormalizePageID is the single conversion from caller input to a PageID: surrounding
// whitespace is not part of an id, so " A " and "A" name the same page.
func NormalizePageID(raw string) util.PageID {
	return util.PageID(strings.TrimSpace(raw))
}

// ParsePageIDs normalizes raw identifiers. Empty ids are rejected.
func ParsePageIDs(raw []string) ([]util.PageID, error) {
	ids := make([]util.PageID, len(raw))
	for i, s := range raw {
		id := NormalizePageID(s)
		if id == "" {
			return nil, util.NewPagingError(util.ErrTypeInvalidPage, id, util.ErrEmptyPageID)
		}
		ids[i] = id
	}
	return ids, nil
}
