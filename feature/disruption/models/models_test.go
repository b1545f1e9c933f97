package models_test

import (
	"testing"

	"disruption-sync/feature/disruption/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

func TestRequiredColumnsMatchModels(t *testing.T) {
	required := models.RequiredColumns()
	assert.Len(t, required, len(models.All()))

	for _, model := range models.All() {
		tabler, ok := model.(schema.Tabler)
		if !assert.True(t, ok) {
			continue
		}
		assert.Contains(t, required, tabler.TableName())
	}
}
