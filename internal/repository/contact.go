package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service"
)

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) service.ContactRepository {
	return &ContactRepository{db: db}
}

// CreateContact добавляет получателя; повторный номер обновляет имя
func (r *ContactRepository) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO alert_contacts (name, phone_number)
		VALUES ($1, $2)
		ON CONFLICT (phone_number) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query, contact.Name, contact.PhoneNumber).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// ListContacts возвращает всех получателей оповещений
func (r *ContactRepository) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone_number, created_at FROM alert_contacts ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.PhoneNumber, &contact.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return contacts, nil
}
