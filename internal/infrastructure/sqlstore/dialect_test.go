package sqlstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/infrastructure/sqlstore"
)

func TestRebindDollar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM jobs WHERE job_id = ?", "SELECT * FROM jobs WHERE job_id = $1"},
		{"UPDATE jobs SET status = ? WHERE job_id = ?", "UPDATE jobs SET status = $1 WHERE job_id = $2"},
		{"SELECT '?' , part_id FROM inventory WHERE part_id = ?", "SELECT '?' , part_id FROM inventory WHERE part_id = $1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqlstore.RebindDollar(tt.in))
	}
}
