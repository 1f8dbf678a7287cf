package orders_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/application/orders"
)

func TestNewOrderNumber_Formato(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	po := orders.NewOrderNumber("PO", now)
	so := orders.NewOrderNumber("SO", now)

	re := regexp.MustCompile(`^(PO|SO)-\d{8}-[0-9a-f]{8}$`)
	assert.Regexp(t, re, po)
	assert.Regexp(t, re, so)
	assert.Contains(t, po, "-20250314-")
	assert.Contains(t, so, "-20250314-")
}

func TestNewOrderNumber_SufijosDistintos(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := orders.NewOrderNumber("SO", now)
		assert.False(t, seen[n], "número repetido: %s", n)
		seen[n] = true
	}
}
