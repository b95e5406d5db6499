package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"gorm.io/gorm"
)

const (
	ticketNumberPrefix = "TICKET-"
	firstTicketNumber  = "TICKET-000001"
)

// createAttempts bounds the retry loop on ticket_number collisions caused
// by concurrent creation.
const createAttempts = 3

type TicketService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewTicketService(db *gorm.DB, cfg *config.Config) *TicketService {
	return &TicketService{db: db, cfg: cfg}
}

// nextTicketNumber computes the number that follows the most recently
// created ticket. Insertion order (descending primary key) decides which
// ticket is "last", not the lexical order of the numbers themselves. Any
// malformed prior number degrades to the base value instead of failing;
// the unique index on ticket_number then arbitrates.
func nextTicketNumber(tx *gorm.DB) string {
	var last models.Ticket
	if err := tx.Order("id DESC").First(&last).Error; err != nil || last.TicketNumber == "" {
		return firstTicketNumber
	}

	parts := strings.SplitN(last.TicketNumber, "-", 2)
	if len(parts) != 2 {
		return firstTicketNumber
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return firstTicketNumber
	}
	return fmt.Sprintf("%s%06d", ticketNumberPrefix, n+1)
}

// Create persists a new ticket, assigning its sequential number. A ticket
// that already carries a number keeps it. The read-format-insert sequence
// runs inside one transaction and retries when two concurrent creations
// race to the same number and the unique index rejects the second.
func (s *TicketService) Create(ticket *models.Ticket) error {
	if ticket.TicketNumber != "" {
		return s.db.Create(ticket).Error
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			ticket.TicketNumber = nextTicketNumber(tx)
			return tx.Create(ticket).Error
		})
		if err == nil {
			return nil
		}
		lastErr = err
		if !isUniqueViolation(err) {
			return err
		}
		// Clear the stale number so the next attempt recomputes it
		ticket.ID = 0
		ticket.TicketNumber = ""
	}
	return lastErr
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique")
}

// TicketUpdate carries the mutable ticket fields. The generated number and
// the creator are immutable once set.
type TicketUpdate struct {
	FirstName         *string
	LastName          *string
	ResponsiblePerson *string
	AreaID            *uint
	Notes             *string
	Status            *string
}

// Update applies field changes to a ticket. ResolvedAt is stamped exactly
// when the status transitions from non-completed to completed.
func (s *TicketService) Update(id uint, upd TicketUpdate) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, id).Error; err != nil {
		return nil, err
	}

	wasCompleted := ticket.Status == models.TicketCompleted

	if upd.FirstName != nil {
		ticket.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		ticket.LastName = *upd.LastName
	}
	if upd.ResponsiblePerson != nil {
		ticket.ResponsiblePerson = *upd.ResponsiblePerson
	}
	if upd.AreaID != nil {
		ticket.AreaID = upd.AreaID
	}
	if upd.Notes != nil {
		ticket.Notes = *upd.Notes
	}
	if upd.Status != nil {
		if *upd.Status != models.TicketPending && *upd.Status != models.TicketCompleted {
			return nil, errors.New("invalid status")
		}
		ticket.Status = *upd.Status
	}

	if !wasCompleted && ticket.Status == models.TicketCompleted {
		now := time.Now()
		ticket.ResolvedAt = &now
	}

	if err := s.db.Save(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Complete marks a pending ticket as completed and stamps the resolution
// time. Completing an already-completed ticket changes nothing.
func (s *TicketService) Complete(id uint) (*models.Ticket, bool, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, id).Error; err != nil {
		return nil, false, err
	}

	if ticket.Status == models.TicketCompleted {
		return &ticket, false, nil
	}

	now := time.Now()
	ticket.Status = models.TicketCompleted
	ticket.ResolvedAt = &now
	if err := s.db.Save(&ticket).Error; err != nil {
		return nil, false, err
	}
	return &ticket, true, nil
}

// GetByID retrieves a ticket with its relations
func (s *TicketService) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Preload("Area").Preload("CreatedBy").First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetAll retrieves tickets newest-first with an optional status filter
func (s *TicketService) GetAll(page, limit int, status string) ([]*models.Ticket, int64, error) {
	var tickets []*models.Ticket
	var total int64

	query := s.db.Model(&models.Ticket{}).Preload("Area").Preload("CreatedBy")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// Stats returns ticket totals by status
func (s *TicketService) Stats() (map[string]int64, error) {
	stats := make(map[string]int64)

	var total, pending, completed int64
	if err := s.db.Model(&models.Ticket{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Ticket{}).Where("status = ?", models.TicketPending).Count(&pending).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Ticket{}).Where("status = ?", models.TicketCompleted).Count(&completed).Error; err != nil {
		return nil, err
	}

	stats["total"] = total
	stats["pendientes"] = pending
	stats["completados"] = completed
	return stats, nil
}
