package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

type UpdateCategoryRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}
