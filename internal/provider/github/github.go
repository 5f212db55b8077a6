package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	github_ratelimit "github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/alanmeadows/issuecloser/internal/provider"
)

// PublicAPIURL is the REST endpoint of github.com.
const PublicAPIURL = "https://api.github.com"

// Backend implements provider.IssueSearcher and provider.IssueUpdater for GitHub.
// It is safe for concurrent use; no method mutates the underlying clients.
type Backend struct {
	client      *gh.Client
	gqlOnce     sync.Once
	gqlClient   *githubv4.Client
	token       string
	graphqlURL  string // empty for github.com
	stateReason string
}

// NewBackend creates a GitHub backend authenticated with token.
// An empty apiURL or PublicAPIURL targets github.com; anything else is treated
// as a GitHub Enterprise Server base URL.
// Uses go-github-ratelimit middleware for automatic rate limit handling.
func NewBackend(token, apiURL string) (*Backend, error) {
	rateLimiter := github_ratelimit.NewClient(nil)
	client := gh.NewClient(rateLimiter).WithAuthToken(token)

	b := &Backend{
		client: client,
		token:  token,
	}

	if !isPublicAPI(apiURL) {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		b.client = enterprise
		b.graphqlURL = graphQLEndpoint(enterprise.BaseURL)
	}

	return b, nil
}

// WithStateReason sets the state_reason sent with every close request
// ("completed" or "not_planned"). An empty reason sends none.
func (b *Backend) WithStateReason(reason string) *Backend {
	b.stateReason = reason
	return b
}

// SearchIssues fetches one page of the issue search described by req.
func (b *Backend) SearchIssues(ctx context.Context, req provider.SearchRequest) (*provider.SearchPage, error) {
	query := req.Query()
	slog.Debug("searching issues", "query", query, "page", req.Page, "perPage", req.PerPage)

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: req.Page, PerPage: req.PerPage},
	}
	result, _, err := b.client.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	page := &provider.SearchPage{
		Items:      make([]provider.SearchItem, 0, len(result.Issues)),
		TotalCount: result.GetTotal(),
	}
	for _, issue := range result.Issues {
		page.Items = append(page.Items, mapIssue(issue))
	}
	return page, nil
}

// CloseIssue sets the issue's state to "closed".
func (b *Backend) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	req := &gh.IssueRequest{State: gh.Ptr("closed")}
	if b.stateReason != "" {
		req.StateReason = gh.Ptr(b.stateReason)
	}

	if _, _, err := b.client.Issues.Edit(ctx, owner, repo, number, req); err != nil {
		return fmt.Errorf("updating issue state: %w", err)
	}
	return nil
}

// Viewer returns the login of the user the token authenticates as.
func (b *Backend) Viewer(ctx context.Context) (string, error) {
	var query struct {
		Viewer struct {
			Login githubv4.String
		}
	}
	if err := b.getGraphQLClient(ctx).Query(ctx, &query, nil); err != nil {
		return "", fmt.Errorf("failed to query viewer: %w", err)
	}
	return string(query.Viewer.Login), nil
}

// --- Internal helpers ---

// mapIssue converts a GitHub Issue to provider.SearchItem.
func mapIssue(issue *gh.Issue) provider.SearchItem {
	item := provider.SearchItem{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
	}
	for _, l := range issue.Labels {
		item.Labels = append(item.Labels, l.GetName())
	}
	return item
}

// getGraphQLClient returns (and lazily creates) the GitHub GraphQL client.
// Thread-safe via sync.Once.
func (b *Backend) getGraphQLClient(ctx context.Context) *githubv4.Client {
	b.gqlOnce.Do(func() {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: b.token})
		httpClient := oauth2.NewClient(ctx, ts)
		if b.graphqlURL == "" {
			b.gqlClient = githubv4.NewClient(httpClient)
		} else {
			b.gqlClient = githubv4.NewEnterpriseClient(b.graphqlURL, httpClient)
		}
	})
	return b.gqlClient
}

func isPublicAPI(apiURL string) bool {
	return apiURL == "" || strings.TrimSuffix(apiURL, "/") == PublicAPIURL
}

// graphQLEndpoint maps an enterprise REST base (https://host/api/v3/) to
// its GraphQL endpoint (https://host/api/graphql).
func graphQLEndpoint(restBase *url.URL) string {
	u := *restBase
	u.Path = strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), "/v3") + "/graphql"
	return u.String()
}

// Verify Backend implements both capabilities at compile time.
var (
	_ provider.IssueSearcher = (*Backend)(nil)
	_ provider.IssueUpdater  = (*Backend)(nil)
)
