package job

import (
	"fmt"
	"time"
)

// InvoiceNumber arma el número de factura de un trabajo: INV-<año>-<id con 5 dígitos>.
func InvoiceNumber(issued time.Time, jobID int64) string {
	return fmt.Sprintf("INV-%d-%05d", issued.Year(), jobID)
}
