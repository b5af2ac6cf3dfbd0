package model

import "time"

// Loan represents a borrow record (peminjaman row), produced and consumed
// entirely by the backend. This client only reads it, joined with its
// catalog asset.
type Loan struct {
	ID               int64      `json:"id"`
	Borrower         string     `json:"peminjam"`
	Status           string     `json:"status"`
	InitialCondition string     `json:"kondisi_awal,omitempty"`
	BorrowedAt       *time.Time `json:"tanggal_pinjam,omitempty"`

	// Joined catalog row (PostgREST embedded resource).
	Asset *Asset `json:"inventaris_utama,omitempty"`
}

// LoanStatusBorrowed marks a loan as currently out.
const LoanStatusBorrowed = "Dipinjam"
