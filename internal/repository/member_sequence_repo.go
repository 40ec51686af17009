package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devs-society/backend/internal/model"
)

// MemberSequenceRepository per-year member number sequence
type MemberSequenceRepository interface {
	// Next atomically advances and returns the sequence for (prefix, year), starting at 1
	Next(ctx context.Context, prefix string, year int) (int, error)
}

type memberSequenceRepo struct {
	db *gorm.DB
}

// NewMemberSequenceRepo creates a MemberSequenceRepository
func NewMemberSequenceRepo(db *gorm.DB) MemberSequenceRepository {
	return &memberSequenceRepo{db: db}
}

func (r *memberSequenceRepo) Next(ctx context.Context, prefix string, year int) (int, error) {
	seq := model.MemberIDSequence{Prefix: prefix, Year: year, LastValue: 1}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "prefix"}, {Name: "year"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"last_value": gorm.Expr("member_id_sequences.last_value + 1"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_value"}}},
		).
		Create(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}
