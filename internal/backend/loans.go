package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// ListActiveLoans returns loans still marked borrowed whose borrower name
// contains the given name, each joined with its catalog row.
func (c *Client) ListActiveLoans(ctx context.Context, borrowerName string) ([]model.Loan, error) {
	query := url.Values{}
	query.Set("select", "*,inventaris_utama(*)")
	query.Set("status", eq(model.LoanStatusBorrowed))
	query.Set("peminjam", contains(borrowerName))

	var loans []model.Loan
	if err := c.get(ctx, "peminjaman", query, &loans); err != nil {
		return nil, fmt.Errorf("listing active loans: %w", err)
	}
	return loans, nil
}
