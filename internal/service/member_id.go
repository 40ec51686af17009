package service

import (
	"context"
	"fmt"

	"devs-society/backend/internal/repository"
)

// FormatMemberID renders PREFIX-YYYY-NNNN
func FormatMemberID(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%04d-%04d", prefix, year, seq)
}

// nextMemberID draws the next number from the per-year sequence
func nextMemberID(ctx context.Context, repo *repository.Repository, prefix string, year int) (string, error) {
	seq, err := repo.MemberSequence.Next(ctx, prefix, year)
	if err != nil {
		return "", fmt.Errorf("next member sequence: %w", err)
	}
	return FormatMemberID(prefix, year, seq), nil
}
