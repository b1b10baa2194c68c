package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Phone numbers are stored at varchar(50) in the customer model and
// snapshotted onto invoices, so the DDL must declare the same width.
func TestInitSchemaPhoneColumnWidths(t *testing.T) {
	path := filepath.Join("..", "..", "..", "migrations", "000001_init_schema.up.sql")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	ddl := strings.ToLower(string(raw))
	assert.Contains(t, ddl, "phone varchar(50) not null")
	assert.Contains(t, ddl, "customer_phone varchar(50)")
	assert.NotContains(t, ddl, "phone varchar(20)")
}
