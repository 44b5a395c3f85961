package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
)

func TestProductImageDTOServesThroughUploadsMount(t *testing.T) {
	productID := uuid.New()
	row := &models.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		ImageName: "a1b2.jpg",
		ImagePath: "products/" + productID.String() + "/original/a1b2.jpg",
		FileSize:  2048,
		MimeType:  "image/jpeg",
	}

	dto := NewProductImageDTO(row)
	assert.Equal(t, "/uploads/products/"+productID.String()+"/original/a1b2.jpg", dto.ImageURL)
	assert.Equal(t, "a1b2.jpg", dto.ImageName)
	assert.Equal(t, int64(2048), dto.FileSize)
}
