package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

type orderRepository struct {
	BaseRepository
}

func NewOrderRepository(base BaseRepository) repository.OrderRepository {
	return &orderRepository{base}
}

func (r *orderRepository) Create(ctx context.Context, order *model.DoctorsOrder) error {
	query := `
		INSERT INTO doctors_orders (id, code, admission_id, ordered_by, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.Code,
		order.AdmissionID,
		order.OrderedBy,
		order.Content,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctors order: %w", err)
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id uuid.UUID) (*model.DoctorsOrder, error) {
	var order model.DoctorsOrder
	if err := r.db.GetContext(ctx, &order, `SELECT * FROM doctors_orders WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get doctors order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.DoctorsOrder) error {
	query := `UPDATE doctors_orders SET ordered_by = $1, content = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, order.OrderedBy, order.Content, time.Now(), order.ID)
	if err != nil {
		return fmt.Errorf("failed to update doctors order: %w", err)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM doctors_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctors order: %w", err)
	}
	return nil
}

func (r *orderRepository) ListByAdmission(ctx context.Context, admissionID uuid.UUID) ([]*model.DoctorsOrder, error) {
	query := `SELECT * FROM doctors_orders WHERE admission_id = $1 ORDER BY created_at DESC`
	var orders []*model.DoctorsOrder
	if err := r.db.SelectContext(ctx, &orders, query, admissionID); err != nil {
		return nil, fmt.Errorf("failed to list doctors orders: %w", err)
	}
	return orders, nil
}
