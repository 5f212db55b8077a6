package issues

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanmeadows/issuecloser/internal/provider"
)

// FetchOpenIssues returns every open issue in owner/repo, optionally restricted
// to issues carrying label (empty means no label filter).
//
// Pages are fetched sequentially. Pagination continues only while the previous
// page came back full and stops after provider.MaxPages pages, so result sets
// beyond 1000 issues are truncated. Items keep fetch order and are neither
// deduplicated nor sorted. Any page error aborts the fetch; no partial result
// is returned.
func FetchOpenIssues(ctx context.Context, searcher provider.IssueSearcher, owner, repo, label string) ([]CloseableIssue, error) {
	req := provider.NewSearchRequest(owner, repo, label)

	result := make([]CloseableIssue, 0)
	for {
		page, err := searcher.SearchIssues(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", req.Page, err)
		}
		slog.Debug("fetched search page", "page", req.Page, "items", len(page.Items), "total", page.TotalCount)

		for _, item := range page.Items {
			result = append(result, FromSearchItem(owner, repo, item))
		}

		if len(page.Items) != req.PerPage || req.Page >= provider.MaxPages {
			if len(page.Items) == req.PerPage {
				slog.Warn("page limit reached, results may be truncated",
					"pages", req.Page, "fetched", len(result), "total", page.TotalCount)
			}
			break
		}
		req.Page++
	}

	return result, nil
}
