package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()

	require.NoError(t, store.AppendEvent("A", NewEvent(StockLowEvent, "A", "first")))
	require.NoError(t, store.AppendEvent("B", NewEvent(StockOutEvent, "B", "second")))
	require.NoError(t, store.AppendEvent("A", NewEvent(ReplenishmentPlannedEvent, "A", "third")))

	streamA, err := store.ReadEvents("A", 0)
	require.NoError(t, err)
	require.Len(t, streamA, 2)
	assert.Equal(t, 1, streamA[0].Version())
	assert.Equal(t, 2, streamA[1].Version())
	assert.Equal(t, "third", streamA[1].Data())

	fromSecond, err := store.ReadEvents("A", 2)
	require.NoError(t, err)
	require.Len(t, fromSecond, 1)
	assert.Equal(t, ReplenishmentPlannedEvent, fromSecond[0].Type())

	beyond, err := store.ReadEvents("A", 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	missing, err := store.ReadEvents("Z", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "B", all[1].StreamID())

	tail, err := store.ReadAllEvents(2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "third", tail[0].Data())
}

func TestInMemoryEventStore_RejectsEmptyStream(t *testing.T) {
	store := NewInMemoryEventStore()
	assert.EqualError(t, store.AppendEvent("", NewEvent(StockLowEvent, "", nil)), "stream id cannot be empty")
}

func TestInMemoryEventStore_Subscribe(t *testing.T) {
	store := NewInMemoryEventStore()

	var received []string
	id, err := store.Subscribe([]string{StockOutEvent}, HandlerFunc{Fn: func(e Event) error {
		received = append(received, e.StreamID())
		return nil
	}})
	require.NoError(t, err)

	require.NoError(t, store.AppendEvent("A", NewEvent(StockOutEvent, "A", nil)))
	require.NoError(t, store.AppendEvent("B", NewEvent(StockLowEvent, "B", nil)))
	assert.Equal(t, []string{"A"}, received)

	require.NoError(t, store.Unsubscribe(id))
	require.NoError(t, store.AppendEvent("C", NewEvent(StockOutEvent, "C", nil)))
	assert.Equal(t, []string{"A"}, received)

	assert.EqualError(t, store.Unsubscribe(id), "subscription not found: 1")
}

func TestInMemoryEventStore_HandlerErrorDoesNotFailAppend(t *testing.T) {
	store := NewInMemoryEventStore()

	_, err := store.Subscribe([]string{StockOutEvent}, HandlerFunc{Fn: func(Event) error {
		return errors.New("boom")
	}})
	require.NoError(t, err)

	assert.NoError(t, store.AppendEvent("A", NewEvent(StockOutEvent, "A", nil)))
}

func TestInMemoryEventStore_SubscribeValidation(t *testing.T) {
	store := NewInMemoryEventStore()

	_, err := store.Subscribe([]string{StockOutEvent}, nil)
	assert.EqualError(t, err, "handler cannot be nil")

	_, err = store.Subscribe(nil, HandlerFunc{Fn: func(Event) error { return nil }})
	assert.EqualError(t, err, "at least one event type is required")
}

func TestHandlerFunc_CanHandle(t *testing.T) {
	catchAll := HandlerFunc{}
	assert.True(t, catchAll.CanHandle(StockLowEvent))

	only := HandlerFunc{Types: []string{StockOutEvent}}
	assert.True(t, only.CanHandle(StockOutEvent))
	assert.False(t, only.CanHandle(StockLowEvent))
}

func TestNewStockAlertEvent(t *testing.T) {
	thresholds := entities.DefaultDOIThresholds()

	out := NewStockAlertEvent(StockAlert{SKU: "A", Status: entities.OutOfStock, Thresholds: thresholds})
	require.NotNil(t, out)
	assert.Equal(t, StockOutEvent, out.Type())
	assert.Equal(t, "A", out.StreamID())

	low := NewStockAlertEvent(StockAlert{SKU: "B", Status: entities.LowStock, DOI: 20, Thresholds: thresholds})
	require.NotNil(t, low)
	assert.Equal(t, StockLowEvent, low.Type())
	assert.Equal(t, 20.0, low.Data().(StockAlert).DOI)

	assert.Nil(t, NewStockAlertEvent(StockAlert{SKU: "C", Status: entities.InStock}))

	planned := NewReplenishmentPlannedEvent(entities.ReplenishmentLine{SKU: "D", UnitsToMake: 40})
	assert.Equal(t, ReplenishmentPlannedEvent, planned.Type())
	assert.Equal(t, 40.0, planned.Data().(ReplenishmentPlanned).Line.UnitsToMake)
}
