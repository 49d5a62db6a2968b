package postgres

import (
	"context"
	"errors"
	"fmt"

	"roktoSheba/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentsRepository struct {
	DB *gorm.DB
}

func NewPaymentsRepository(db *gorm.DB) *PaymentsRepository {
	return &PaymentsRepository{
		DB: db,
	}
}

// Migrate creates the payments table and its unique transaction index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Payment{})
}

func (r *PaymentsRepository) FindByTransactionID(ctx context.Context, transactionID string) (domain.Payment, error) {
	var payment domain.Payment

	err := r.DB.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Payment{}, domain.ErrNotFound
		}
		return domain.Payment{}, fmt.Errorf("failed to find payment: %w", err)
	}

	return payment, nil
}

// CreateIfAbsent inserts the payment unless its transaction id is already
// recorded. It reports whether a row was written.
func (r *PaymentsRepository) CreateIfAbsent(ctx context.Context, payment *domain.Payment) (bool, error) {
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_id"}},
			DoNothing: true,
		}).
		Create(payment)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create payment: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *PaymentsRepository) TotalAmount(ctx context.Context) (float64, error) {
	var total float64

	err := r.DB.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}

	return total, nil
}
