package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// LotteryParticipantRepository implements participant set access
type LotteryParticipantRepository struct {
	q Queryable
}

// NewLotteryParticipantRepository creates a new participant repository
func NewLotteryParticipantRepository(db *database.DB) *LotteryParticipantRepository {
	return &LotteryParticipantRepository{q: db.Pool}
}

func newLotteryParticipantRepositoryWithTx(tx Queryable) *LotteryParticipantRepository {
	return &LotteryParticipantRepository{q: tx}
}

// Add enrolls the account. Returns false if it was already a participant.
func (r *LotteryParticipantRepository) Add(ctx context.Context, participant *entities.LotteryParticipant) (bool, error) {
	query := `
		INSERT INTO lottery_participants (lottery_id, account, attached)
		VALUES ($1, $2, $3)
		ON CONFLICT (lottery_id, account) DO NOTHING
		RETURNING position, enrolled_at
	`

	err := r.q.QueryRow(ctx, query,
		participant.LotteryID,
		string(participant.Account),
		participant.Attached,
	).Scan(&participant.Position, &participant.EnrolledAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to add participant to lottery %d: %w", participant.LotteryID, err)
	}

	return true, nil
}

// ListByLottery returns participants in enrollment order
func (r *LotteryParticipantRepository) ListByLottery(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error) {
	query := `
		SELECT lottery_id, account, position, attached, enrolled_at
		FROM lottery_participants
		WHERE lottery_id = $1
		ORDER BY position ASC
	`

	rows, err := r.q.Query(ctx, query, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of lottery %d: %w", lotteryID, err)
	}
	defer rows.Close()

	participants := make([]*entities.LotteryParticipant, 0)
	for rows.Next() {
		var p entities.LotteryParticipant
		if err := rows.Scan(&p.LotteryID, &p.Account, &p.Position, &p.Attached, &p.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// Count returns the number of distinct participants
func (r *LotteryParticipantRepository) Count(ctx context.Context, lotteryID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lottery_participants WHERE lottery_id = $1`, lotteryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants of lottery %d: %w", lotteryID, err)
	}
	return count, nil
}
