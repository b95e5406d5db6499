package services

import (
	"testing"
	"time"

	"github.com/sigelp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicket(first, last string) *models.Ticket {
	return &models.Ticket{
		FirstName: first,
		LastName:  last,
		Notes:     "solicitud de constancia de trabajo",
		Status:    models.TicketPending,
	}
}

func TestTicketNumberSequence(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	first := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(first))
	assert.Equal(t, "TICKET-000001", first.TicketNumber)

	second := newTicket("Luis", "Rojas")
	require.NoError(t, svc.Create(second))
	assert.Equal(t, "TICKET-000002", second.TicketNumber)

	third := newTicket("Carla", "Mendoza")
	require.NoError(t, svc.Create(third))
	assert.Equal(t, "TICKET-000003", third.TicketNumber)
}

func TestTicketNumberFollowsInsertionOrderNotLexical(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	// A manually numbered ticket far ahead of the sequence
	manual := newTicket("Jorge", "Paredes")
	manual.TicketNumber = "TICKET-000500"
	require.NoError(t, svc.Create(manual))

	next := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(next))
	assert.Equal(t, "TICKET-000501", next.TicketNumber)
}

func TestTicketNumberMalformedFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	odd := newTicket("Rosa", "Flores")
	odd.TicketNumber = "LEGACY99"
	require.NoError(t, svc.Create(odd))

	next := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(next))
	assert.Equal(t, "TICKET-000001", next.TicketNumber)
}

func TestTicketNumberNonNumericSuffixFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	odd := newTicket("Rosa", "Flores")
	odd.TicketNumber = "TICKET-ABC"
	require.NoError(t, svc.Create(odd))

	next := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(next))
	assert.Equal(t, "TICKET-000001", next.TicketNumber)
}

func TestTicketCreateKeepsExistingNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	ticket := newTicket("Ana", "Torres")
	ticket.TicketNumber = "TICKET-000042"
	require.NoError(t, svc.Create(ticket))
	assert.Equal(t, "TICKET-000042", ticket.TicketNumber)
}

func TestTicketUpdateNeverTouchesNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	ticket := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(ticket))
	number := ticket.TicketNumber

	newName := "Juana"
	updated, err := svc.Update(ticket.ID, TicketUpdate{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, number, updated.TicketNumber)
	assert.Equal(t, "Juana", updated.FirstName)
}

func TestTicketResolvedAtStampedOnTransitionOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	ticket := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(ticket))
	require.Nil(t, ticket.ResolvedAt)

	completed := models.TicketCompleted
	updated, err := svc.Update(ticket.ID, TicketUpdate{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)
	stamp := *updated.ResolvedAt

	// Updating an already completed ticket keeps the original stamp
	note := "seguimiento adicional"
	again, err := svc.Update(ticket.ID, TicketUpdate{Notes: &note, Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, again.ResolvedAt)
	assert.True(t, again.ResolvedAt.Equal(stamp))

	// Reopening and completing again stamps a fresh resolution time
	pending := models.TicketPending
	_, err = svc.Update(ticket.ID, TicketUpdate{Status: &pending})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	redone, err := svc.Update(ticket.ID, TicketUpdate{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, redone.ResolvedAt)
	assert.True(t, redone.ResolvedAt.After(stamp))
}

func TestTicketCompleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	ticket := newTicket("Ana", "Torres")
	require.NoError(t, svc.Create(ticket))

	done, transitioned, err := svc.Complete(ticket.ID)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, models.TicketCompleted, done.Status)
	require.NotNil(t, done.ResolvedAt)
	stamp := *done.ResolvedAt

	again, transitioned, err := svc.Complete(ticket.ID)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.True(t, again.ResolvedAt.Equal(stamp))
}

func TestTicketListFilterAndStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(db, testConfig(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Create(newTicket("Ana", "Torres")))
	}
	done := newTicket("Luis", "Rojas")
	require.NoError(t, svc.Create(done))
	_, _, err := svc.Complete(done.ID)
	require.NoError(t, err)

	pending, total, err := svc.GetAll(1, 10, models.TicketPending)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, pending, 3)

	all, total, err := svc.GetAll(1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	// newest first
	assert.Equal(t, done.ID, all[0].ID)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats["total"])
	assert.EqualValues(t, 3, stats["pendientes"])
	assert.EqualValues(t, 1, stats["completados"])
}
