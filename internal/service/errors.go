package service

import "errors"

var (
	// ErrNotFound возвращается репозиториями, когда запись отсутствует
	ErrNotFound = errors.New("not found")
	// ErrNegativeQuantity - количество ресурса не может быть отрицательным
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	// ErrEmptyMessage - текст оповещения обязателен
	ErrEmptyMessage = errors.New("alert message must not be empty")
	// ErrNoRecipients - экстренное оповещение без получателей
	ErrNoRecipients = errors.New("at least one phone number is required")
)
