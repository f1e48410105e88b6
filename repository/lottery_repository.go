package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

const lotteryColumns = `id, ticket_price, seed, winner, payout, resolved_at, created_at`

// LotteryRepository implements lottery data access
type LotteryRepository struct {
	q Queryable
}

// NewLotteryRepository creates a new lottery repository
func NewLotteryRepository(db *database.DB) *LotteryRepository {
	return &LotteryRepository{q: db.Pool}
}

func newLotteryRepositoryWithTx(tx Queryable) *LotteryRepository {
	return &LotteryRepository{q: tx}
}

// Create stores a new open lottery
func (r *LotteryRepository) Create(ctx context.Context, lottery *entities.Lottery) error {
	query := `
		INSERT INTO lotteries (ticket_price, seed)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, lottery.TicketPrice, lottery.Seed[:]).Scan(&lottery.ID, &lottery.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lottery: %w", err)
	}

	return nil
}

// GetByID retrieves a lottery by its ID
func (r *LotteryRepository) GetByID(ctx context.Context, id int64) (*entities.Lottery, error) {
	query := `SELECT ` + lotteryColumns + ` FROM lotteries WHERE id = $1`

	lottery, err := scanLottery(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery by ID %d: %w", id, err)
	}
	return lottery, nil
}

// GetByIDForUpdate retrieves a lottery by ID with row lock for update
func (r *LotteryRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Lottery, error) {
	query := `SELECT ` + lotteryColumns + ` FROM lotteries WHERE id = $1 FOR UPDATE`

	lottery, err := scanLottery(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery for update by ID %d: %w", id, err)
	}
	return lottery, nil
}

// GetCurrentOpen returns the newest unresolved lottery
func (r *LotteryRepository) GetCurrentOpen(ctx context.Context) (*entities.Lottery, error) {
	query := `
		SELECT ` + lotteryColumns + `
		FROM lotteries
		WHERE winner IS NULL
		ORDER BY id DESC
		LIMIT 1
	`

	lottery, err := scanLottery(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to get current lottery: %w", err)
	}
	return lottery, nil
}

// Update persists the outcome. A resolved lottery is never updated again.
func (r *LotteryRepository) Update(ctx context.Context, lottery *entities.Lottery) error {
	query := `
		UPDATE lotteries
		SET winner = $2,
		    payout = $3,
		    resolved_at = $4
		WHERE id = $1 AND winner IS NULL
	`

	result, err := r.q.Exec(ctx, query,
		lottery.ID,
		lottery.WinnerID,
		lottery.Payout,
		lottery.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update lottery %d: %w", lottery.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lottery %d not found or already resolved", lottery.ID)
	}

	return nil
}

// scanLottery returns nil, nil when the row does not exist
func scanLottery(row pgx.Row) (*entities.Lottery, error) {
	var lottery entities.Lottery
	var seed []byte
	err := row.Scan(
		&lottery.ID,
		&lottery.TicketPrice,
		&seed,
		&lottery.WinnerID,
		&lottery.Payout,
		&lottery.ResolvedAt,
		&lottery.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(seed) != entities.SeedSize {
		return nil, fmt.Errorf("lottery %d has a %d byte seed", lottery.ID, len(seed))
	}
	copy(lottery.Seed[:], seed)

	return &lottery, nil
}
