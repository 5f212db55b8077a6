// Package issues exports open issues from a repository and closes exported issues.
package issues

import (
	"errors"
	"fmt"

	"github.com/alanmeadows/issuecloser/internal/provider"
)

// ErrInvalidIssue is returned by Validate for a record that cannot address a remote issue.
var ErrInvalidIssue = errors.New("invalid issue record")

// CloseableIssue is the minimal exported record identifying a remote issue.
// Owner, Repo and Number address the issue; Title and URL are informational.
type CloseableIssue struct {
	Owner  string `json:"owner" yaml:"owner"`
	Repo   string `json:"repo" yaml:"repo"`
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	URL    string `json:"url" yaml:"url"`
}

// FromSearchItem projects a search result onto a CloseableIssue without transforming any field.
func FromSearchItem(owner, repo string, item provider.SearchItem) CloseableIssue {
	return CloseableIssue{
		Owner:  owner,
		Repo:   repo,
		Number: item.Number,
		Title:  item.Title,
		URL:    item.URL,
	}
}

// Validate reports whether the record can address a remote issue.
func (i CloseableIssue) Validate() error {
	switch {
	case i.Owner == "":
		return fmt.Errorf("%w: empty owner (issue %d)", ErrInvalidIssue, i.Number)
	case i.Repo == "":
		return fmt.Errorf("%w: empty repo (issue %d)", ErrInvalidIssue, i.Number)
	case i.Number <= 0:
		return fmt.Errorf("%w: number must be positive, got %d", ErrInvalidIssue, i.Number)
	}
	return nil
}

// String returns the owner/repo#number reference.
func (i CloseableIssue) String() string {
	return fmt.Sprintf("%s/%s#%d", i.Owner, i.Repo, i.Number)
}
