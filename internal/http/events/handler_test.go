package events_test

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlfredoMejia3001/facturacion/internal/http/events"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice"
	"github.com/AlfredoMejia3001/facturacion/internal/invoice/store"
)

func TestHandler_StreamsStoreEvents(t *testing.T) {
	st := store.New()

	router := chi.NewRouter()
	events.NewHandler(st).Routes(router)

	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Give the handler a moment to register its subscription before
	// triggering the mutation.
	time.Sleep(100 * time.Millisecond)

	_, err = st.Add(invoice.CreateParams{
		CustomerName: "Empresa ABC S.A.",
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.RequireFromString("100.50"),
		Status:       invoice.StatusPending,
	})
	require.NoError(t, err)

	scanner := bufio.NewScanner(resp.Body)

	var eventLine, dataLine string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			eventLine = line
		}

		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			break
		}
	}

	assert.Equal(t, "event: invoice-added", eventLine)
	assert.Contains(t, dataLine, "Empresa ABC S.A.")
}
