package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	domainevents "github.com/jryan2014/car-audio-events/internal/domain/events"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/ports"
)

const (
	defaultPeriodStart = "2025-01-01"
	snapshotCacheTTL   = time.Minute
)

// Analytics computes a snapshot of the requested metrics. Each metric is
// an independent sub-query; a failing sub-query is downgraded to a zero
// default for that metric only and never blocks the others. Metrics not
// requested are never populated.
func (s *Service) Analytics(ctx context.Context, in AnalyticsInput) (domainevents.Snapshot, error) {
	metrics, unknown := domainevents.NormalizeMetrics(in.Metrics)
	if len(unknown) > 0 {
		return domainevents.Snapshot{}, errs.Validationf("unknown metrics requested: %v", unknown)
	}

	snapshot := domainevents.Snapshot{
		Period: domainevents.Period{
			Start: in.StartDate,
			End:   in.EndDate,
		},
	}
	if snapshot.Period.Start == "" {
		snapshot.Period.Start = defaultPeriodStart
	}
	if snapshot.Period.End == "" {
		snapshot.Period.End = s.now().UTC().Format("2006-01-02")
	}

	cacheKey := snapshotCacheKey(in.EventID, snapshot.Period, metrics)
	if cached, ok := s.cachedSnapshot(ctx, cacheKey); ok {
		return cached, nil
	}

	filter := ports.StatsFilter{
		EventID:   in.EventID,
		StartDate: snapshot.Period.Start,
		EndDate:   snapshot.Period.End,
	}

	for _, metric := range metrics {
		switch metric {
		case domainevents.MetricRegistrations:
			total, err := s.store.CountRegistrations(ctx, filter)
			if err != nil {
				logging.Warn(ctx, "registration stats failed, using zero default", slog.Any("err", errs.Loggable(err)))
				total = 0
			}
			snapshot.Metrics.Registrations = &domainevents.RegistrationStats{Total: total}

		case domainevents.MetricRevenue:
			total, transactions, err := s.store.SumRevenue(ctx, filter)
			if err != nil {
				logging.Warn(ctx, "revenue stats failed, using zero default", slog.Any("err", errs.Loggable(err)))
				total, transactions = 0, 0
			}
			snapshot.Metrics.Revenue = &domainevents.RevenueStats{Total: total, TransactionCount: transactions}

		case domainevents.MetricAttendance:
			total, err := s.store.CountCheckIns(ctx, filter)
			if err != nil {
				logging.Warn(ctx, "attendance stats failed, using zero default", slog.Any("err", errs.Loggable(err)))
				total = 0
			}
			snapshot.Metrics.Attendance = &domainevents.AttendanceStats{TotalCheckedIn: total}
		}
	}

	s.storeSnapshot(ctx, cacheKey, snapshot)
	return snapshot, nil
}

func snapshotCacheKey(eventID string, period domainevents.Period, metrics []string) string {
	return fmt.Sprintf("analytics:%s:%s:%s:%v", eventID, period.Start, period.End, metrics)
}

func (s *Service) cachedSnapshot(ctx context.Context, key string) (domainevents.Snapshot, bool) {
	if s.cache == nil {
		return domainevents.Snapshot{}, false
	}

	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		logging.Warn(ctx, "snapshot cache read failed", slog.Any("err", errs.Loggable(err)))
		return domainevents.Snapshot{}, false
	}
	if !found {
		return domainevents.Snapshot{}, false
	}

	var snapshot domainevents.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logging.Warn(ctx, "snapshot cache entry corrupt", slog.Any("err", errs.Loggable(err)))
		return domainevents.Snapshot{}, false
	}
	return snapshot, true
}

func (s *Service) storeSnapshot(ctx context.Context, key string, snapshot domainevents.Snapshot) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), snapshotCacheTTL); err != nil {
		logging.Warn(ctx, "snapshot cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}
