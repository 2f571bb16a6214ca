// Package repository implements ports.Store on gorm + sqlite.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/sqlite/model"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

const defaultListLimit = 10

type Store struct {
	db *gorm.DB
}

var _ ports.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return s.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (s *Store) CreateEvent(ctx context.Context, event domainevents.Event) (domainevents.Event, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return domainevents.Event{}, err
	}

	row := model.Event{
		ID:             event.ID,
		Name:           event.Name,
		EventType:      event.EventType,
		StartDate:      event.StartDate,
		EndDate:        event.EndDate,
		Location:       event.Location,
		VenueName:      event.VenueName,
		MaxCompetitors: event.MaxCompetitors,
		EarlyBirdPrice: event.EarlyBirdPrice,
		RegularPrice:   event.RegularPrice,
		Description:    event.Description,
		Status:         event.Status,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.UpdatedAt,
	}

	if err := db.Create(&row).Error; err != nil {
		return domainevents.Event{}, errs.Wrap(err, "insert event")
	}
	return event, nil
}

func (s *Store) ListEvents(ctx context.Context, filter ports.EventFilter) ([]domainevents.Event, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := db.Model(&model.Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}

	var rows []model.Event
	if err := query.Order("start_date asc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query events")
	}

	counts, err := s.registrationCounts(db, rows)
	if err != nil {
		return nil, err
	}

	items := make([]domainevents.Event, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapEvent(row, counts[row.ID]))
	}
	return items, nil
}

func (s *Store) GetEvent(ctx context.Context, eventID string) (domainevents.Event, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return domainevents.Event{}, err
	}

	var row model.Event
	if err := db.Where("id = ?", eventID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainevents.Event{}, ports.ErrEventNotFound
		}
		return domainevents.Event{}, errs.Wrap(err, "query event by id")
	}

	counts, err := s.registrationCounts(db, []model.Event{row})
	if err != nil {
		return domainevents.Event{}, err
	}
	return mapEvent(row, counts[row.ID]), nil
}

type registrationCountRow struct {
	EventID string
	Total   int64
}

func (s *Store) registrationCounts(db *gorm.DB, rows []model.Event) (map[string]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var counts []registrationCountRow
	err := db.Model(&model.Registration{}).
		Select("event_id as event_id, count(*) as total").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&counts).Error
	if err != nil {
		return nil, errs.Wrap(err, "count registrations per event")
	}

	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.EventID] = c.Total
	}
	return out, nil
}

func (s *Store) CreateRegistration(ctx context.Context, reg domainevents.Registration) (domainevents.Registration, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return domainevents.Registration{}, err
	}

	vehicleInfo, err := encodeJSON(reg.VehicleInfo)
	if err != nil {
		return domainevents.Registration{}, errs.Wrap(err, "encode vehicle info")
	}

	row := model.Registration{
		ID:             reg.ID,
		EventID:        reg.EventID,
		CompetitorName: reg.CompetitorName,
		Email:          reg.Email,
		Phone:          reg.Phone,
		VehicleInfo:    vehicleInfo,
		ClassID:        reg.ClassID,
		Status:         reg.Status,
		CreatedAt:      reg.CreatedAt,
	}
	if reg.TeamName != "" {
		row.TeamName = &reg.TeamName
	}

	if err := db.Create(&row).Error; err != nil {
		return domainevents.Registration{}, errs.Wrap(err, "insert registration")
	}
	return reg, nil
}

func (s *Store) ListRegistrations(ctx context.Context, filter ports.RegistrationFilter) ([]domainevents.Registration, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Registration{})
	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []model.Registration
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query registrations")
	}

	items := make([]domainevents.Registration, 0, len(rows))
	for _, row := range rows {
		reg, err := mapRegistration(row)
		if err != nil {
			return nil, err
		}
		items = append(items, reg)
	}
	return items, nil
}

func (s *Store) ConfirmRegistration(ctx context.Context, registrationID string) error {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.Registration{}).
		Where("id = ?", registrationID).
		Update("status", domainevents.RegistrationConfirmed)
	if res.Error != nil {
		return errs.Wrap(res.Error, "confirm registration")
	}
	if res.RowsAffected == 0 {
		return ports.ErrRegistrationNotFound
	}
	return nil
}

func (s *Store) CreatePayment(ctx context.Context, payment domainevents.Payment) (domainevents.Payment, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return domainevents.Payment{}, err
	}

	metadata, err := encodeJSON(payment.Metadata)
	if err != nil {
		return domainevents.Payment{}, errs.Wrap(err, "encode payment metadata")
	}

	row := model.Payment{
		ID:             payment.ID,
		RegistrationID: payment.RegistrationID,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		PaymentMethod:  payment.PaymentMethod,
		Metadata:       metadata,
		Status:         payment.Status,
		ProcessedAt:    payment.ProcessedAt,
	}

	if err := db.Create(&row).Error; err != nil {
		return domainevents.Payment{}, errs.Wrap(err, "insert payment")
	}
	return payment, nil
}

func (s *Store) CreateTicket(ctx context.Context, ticket domainevents.SupportTicket) (domainevents.SupportTicket, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return domainevents.SupportTicket{}, err
	}

	attachments, err := encodeJSON(ticket.Attachments)
	if err != nil {
		return domainevents.SupportTicket{}, errs.Wrap(err, "encode ticket attachments")
	}

	row := model.SupportTicket{
		ID:          ticket.ID,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		Category:    ticket.Category,
		UserEmail:   ticket.UserEmail,
		Attachments: attachments,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
	}

	if err := db.Create(&row).Error; err != nil {
		return domainevents.SupportTicket{}, errs.Wrap(err, "insert support ticket")
	}
	return ticket, nil
}

func (s *Store) CountRegistrations(ctx context.Context, filter ports.StatsFilter) (int64, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := statsScope(db.Model(&model.Registration{}), filter, "created_at")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, errs.Wrap(err, "count registrations")
	}
	return total, nil
}

type revenueRow struct {
	Total        float64
	Transactions int64
}

func (s *Store) SumRevenue(ctx context.Context, filter ports.StatsFilter) (float64, int64, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return 0, 0, err
	}

	query := db.Model(&model.Payment{}).Where("status = ?", domainevents.PaymentSucceeded)
	if filter.EventID != "" {
		sub := db.Model(&model.Registration{}).
			Select("id").
			Where("event_id = ?", filter.EventID)
		query = query.Where("registration_id IN (?)", sub)
	}
	if filter.StartDate != "" {
		query = query.Where("processed_at >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		cond, bound := endDateScope("processed_at", filter.EndDate)
		query = query.Where(cond, bound)
	}

	var row revenueRow
	err = query.
		Select("coalesce(sum(amount), 0) as total, count(*) as transactions").
		Scan(&row).Error
	if err != nil {
		return 0, 0, errs.Wrap(err, "sum revenue")
	}
	return row.Total, row.Transactions, nil
}

func (s *Store) CountCheckIns(ctx context.Context, filter ports.StatsFilter) (int64, error) {
	db, err := s.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := statsScope(db.Model(&model.CheckIn{}), filter, "checked_in_at")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, errs.Wrap(err, "count check-ins")
	}
	return total, nil
}

// statsScope applies the shared event/date-window filters. Bounds are
// inclusive on the given timestamp column.
func statsScope(query *gorm.DB, filter ports.StatsFilter, tsColumn string) *gorm.DB {
	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.StartDate != "" {
		query = query.Where(tsColumn+" >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		cond, bound := endDateScope(tsColumn, filter.EndDate)
		query = query.Where(cond, bound)
	}
	return query
}

// endDateScope builds the upper-bound condition for an end date. A bare
// date turns into an exclusive next-day bound so the whole day is
// covered regardless of timestamp precision; a full timestamp stays an
// inclusive bound.
func endDateScope(tsColumn, endDate string) (string, string) {
	if day, err := time.Parse("2006-01-02", endDate); err == nil {
		return tsColumn + " < ?", day.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return tsColumn + " <= ?", endDate
}

func mapEvent(row model.Event, registrations int64) domainevents.Event {
	return domainevents.Event{
		ID:             row.ID,
		Name:           row.Name,
		EventType:      row.EventType,
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		Location:       row.Location,
		VenueName:      row.VenueName,
		MaxCompetitors: row.MaxCompetitors,
		EarlyBirdPrice: row.EarlyBirdPrice,
		RegularPrice:   row.RegularPrice,
		Description:    row.Description,
		Status:         row.Status,
		Registrations:  registrations,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func mapRegistration(row model.Registration) (domainevents.Registration, error) {
	var vehicleInfo map[string]any
	if err := decodeJSON(row.VehicleInfo, &vehicleInfo); err != nil {
		return domainevents.Registration{}, errs.Wrapf(err, "decode vehicle info for %s", row.ID)
	}

	reg := domainevents.Registration{
		ID:             row.ID,
		EventID:        row.EventID,
		CompetitorName: row.CompetitorName,
		Email:          row.Email,
		Phone:          row.Phone,
		VehicleInfo:    vehicleInfo,
		ClassID:        row.ClassID,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
	}
	if row.TeamName != nil {
		reg.TeamName = *row.TeamName
	}
	return reg, nil
}

func encodeJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeJSON(raw string, out any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}
