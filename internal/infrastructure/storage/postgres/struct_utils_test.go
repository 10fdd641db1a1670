package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"factura/internal/core/entity"
	"factura/internal/core/id"
)

type mockCatalog struct {
	entity.BaseEntity
	SKU    string   `db:"sku" json:"sku"`
	Name   string   `db:"name" json:"name"`
	Hidden string   `db:"-" json:"hidden"`
	Lines  []string `db:"-" json:"lines"`
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "tenant_id", "created_at", "updated_at", "sku", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap_EmbeddedBase(t *testing.T) {
	now := time.Now().UTC()
	cat := mockCatalog{
		BaseEntity: entity.BaseEntity{
			ID:        id.New(),
			TenantID:  id.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SKU:    "SKU-001",
		Name:   "Test Name",
		Hidden: "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, cat.TenantID, m["tenant_id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "SKU-001", m["sku"])
	assert.Equal(t, "Test Name", m["name"])
	assert.NotContains(t, m, "-")
	assert.NotContains(t, m, "hidden")
}
