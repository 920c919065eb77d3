package job_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain/job"
)

func TestInvoiceNumber(t *testing.T) {
	issued := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-2026-00042", job.InvoiceNumber(issued, 42))
	assert.Equal(t, "INV-2026-123456", job.InvoiceNumber(issued, 123456))
}
