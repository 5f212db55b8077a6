package provider

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
)

const (
	// PageSize is the number of results requested per search page.
	PageSize = 100
	// MaxPages caps pagination; the search API serves at most 1000 results.
	MaxPages = 10
)

// IssueSearcher fetches one page of issue search results.
type IssueSearcher interface {
	// SearchIssues runs the search described by req and returns the requested page.
	SearchIssues(ctx context.Context, req SearchRequest) (*SearchPage, error)
}

// IssueUpdater transitions a single issue to the closed state.
type IssueUpdater interface {
	// CloseIssue asks the remote to set the issue's state to "closed".
	CloseIssue(ctx context.Context, owner, repo string, number int) error
}

// SearchRequest describes a search for open issues in one repository.
type SearchRequest struct {
	// Owner is the repository owner or organization.
	Owner string
	// Repo is the repository name.
	Repo string
	// Labels restricts results to issues carrying every listed label. Nil means no label filter.
	Labels []string
	// Page is the 1-based page number.
	Page int
	// PerPage is the page size.
	PerPage int
}

// NewSearchRequest returns a first-page request for open issues in owner/repo.
// An empty label means no label filter.
func NewSearchRequest(owner, repo, label string) SearchRequest {
	req := SearchRequest{
		Owner:   owner,
		Repo:    repo,
		Page:    1,
		PerPage: PageSize,
	}
	if label != "" {
		req.Labels = []string{label}
	}
	return req
}

// Query renders the request as a search query string, e.g.
// `repo:octocat/hello-world is:issue is:open label:"bug"`.
func (r SearchRequest) Query() string {
	parts := []string{
		fmt.Sprintf("repo:%s/%s", r.Owner, r.Repo),
		"is:issue",
		"is:open",
	}
	for _, l := range r.Labels {
		parts = append(parts, "label:"+quoteQualifier(l))
	}
	return strings.Join(parts, " ")
}

// quoteQualifier wraps a qualifier value in double quotes so the search treats
// it as one literal name. Unquoted, "a,b" matches label a OR label b.
func quoteQualifier(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	// Items holds the page's results in the order the remote returned them.
	Items []SearchItem
	// TotalCount is the total number of matches reported by the remote.
	TotalCount int
}

// SearchItem is a single issue returned by a search. URL is the browsable
// link to the issue, not the API URL.
type SearchItem struct {
	Number int
	Title  string
	URL    string
	Labels []string
}
