package catalog

import (
	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
)

// CategoryDTO is the transport shape for a taxonomy node.
type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

// MaterialDTO is the transport shape for a material.
type MaterialDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
}

// CategoriesFromModels projects category rows into their API payloads.
func CategoriesFromModels(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryDTO{
			ID:          row.ID,
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			ParentID:    row.ParentID,
		})
	}
	return out
}

// MaterialsFromModels projects material rows into their API payloads.
func MaterialsFromModels(rows []models.Material) []MaterialDTO {
	out := make([]MaterialDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, MaterialDTO{
			ID:          row.ID,
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
		})
	}
	return out
}
