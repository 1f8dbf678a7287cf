package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber genera un número de orden legible: {PO|SO}-yyyyMMdd-<8 hex>.
// El sufijo sale de un UUID; la unicidad dura la garantiza el índice único
// sobre order_number.
func NewOrderNumber(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}
