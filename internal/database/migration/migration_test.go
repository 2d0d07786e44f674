package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepByName(t *testing.T, name string) migrationStep {
	t.Helper()
	for _, s := range steps {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("migration step %q not found", name)
	return migrationStep{}
}

func TestProductBarcodeUniquenessIsPartial(t *testing.T) {
	// Households add plenty of products by hand with no barcode; only real
	// barcodes may collide within a tenant.
	products := stepByName(t, "create_table_products")
	assert.NotContains(t, products.SQL, "UNIQUE (tenant_id, barcode)")

	idx := stepByName(t, "create_unique_index_products_tenant_barcode")
	assert.Contains(t, idx.SQL, "CREATE UNIQUE INDEX")
	assert.Contains(t, idx.SQL, "WHERE barcode <> ''")
}

func TestStepNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		require.False(t, seen[s.Name], "duplicate step name %q", s.Name)
		seen[s.Name] = true
	}
}
