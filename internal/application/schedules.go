package application

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// GetScheduleByDate returns the schedule stored for date.
func (s *Store) GetScheduleByDate(date string) (Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[date]
	if !ok {
		return Schedule{}, false
	}
	return schedule.clone(), true
}

// AddSchedule stores schedule, replacing any schedule with the same date.
// Items must reference catalog functions and shifts. Servant references are
// not checked so schedules naming a removed servant stay editable.
func (s *Store) AddSchedule(ctx context.Context, schedule Schedule) (Schedule, error) {
	return s.upsertSchedule(ctx, "AddSchedule", schedule)
}

// UpdateSchedule stores schedule, replacing any schedule with the same date.
// It behaves exactly like AddSchedule.
func (s *Store) UpdateSchedule(ctx context.Context, schedule Schedule) (Schedule, error) {
	return s.upsertSchedule(ctx, "UpdateSchedule", schedule)
}

func (s *Store) upsertSchedule(ctx context.Context, operation string, schedule Schedule) (stored Schedule, err error) {
	if s == nil {
		return Schedule{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, operation, "date", schedule.Date)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to store schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "schedule stored", "item_count", len(stored.Items), "published", stored.Published)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if vErr := s.validateScheduleLocked(schedule); vErr.HasErrors() {
		return Schedule{}, vErr
	}

	stored = schedule.clone()
	s.schedules[stored.Date] = stored
	s.saveSchedulesLocked(ctx)
	return stored.clone(), nil
}

func (s *Store) validateScheduleLocked(schedule Schedule) *ValidationError {
	vErr := &ValidationError{}

	if !validDate(schedule.Date) {
		vErr.add("date", "date must be YYYY-MM-DD")
	}

	seen := make(map[int64]struct{}, len(schedule.Items))
	for i, item := range schedule.Items {
		field := "items[" + strconv.Itoa(i) + "]"
		if _, dup := seen[item.ID]; dup {
			vErr.add(field+".id", "item id is duplicated")
		}
		seen[item.ID] = struct{}{}

		if _, ok := s.catalog.function(item.FunctionID); !ok {
			vErr.add(field+".function_id", "function does not exist")
		}
		if _, ok := s.catalog.shift(item.ShiftID); !ok {
			vErr.add(field+".shift_id", "shift does not exist")
		}
	}

	return vErr
}

// NewScheduleItem returns an item with a freshly minted id. The item is not
// stored until it is submitted as part of a schedule.
func (s *Store) NewScheduleItem(functionID int, servantID int64, shiftID int) ScheduleItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextIDLocked(func(candidate int64) bool {
		for _, schedule := range s.schedules {
			for _, item := range schedule.Items {
				if item.ID == candidate {
					return false
				}
			}
		}
		return true
	})
	return ScheduleItem{ID: id, FunctionID: functionID, ServantID: servantID, ShiftID: shiftID}
}

// SchedulesBetween returns the schedules dated within [from, to], ordered by date.
func (s *Store) SchedulesBetween(from, to string) ([]Schedule, error) {
	if vErr := validateRange(from, to); vErr.HasErrors() {
		return nil, vErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedulesBetweenLocked(from, to), nil
}

func (s *Store) schedulesBetweenLocked(from, to string) []Schedule {
	var out []Schedule
	for _, schedule := range s.sortedSchedulesLocked() {
		if inRange(schedule.Date, from, to) {
			out = append(out, schedule)
		}
	}
	return out
}

// WeekSchedules returns the schedules of the Sunday to Saturday week containing ref.
func (s *Store) WeekSchedules(ref time.Time) []Schedule {
	start := ref.AddDate(0, 0, -int(ref.Weekday()))
	end := start.AddDate(0, 0, 6)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedulesBetweenLocked(FormatDate(start), FormatDate(end))
}

// WeekendSchedules returns the schedules of the upcoming weekend: the next
// Saturday (ref itself when it is a Saturday) and the Sunday after it.
func (s *Store) WeekendSchedules(ref time.Time) []Schedule {
	saturday := ref.AddDate(0, 0, (int(time.Saturday)-int(ref.Weekday())+7)%7)
	sunday := saturday.AddDate(0, 0, 1)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedulesBetweenLocked(FormatDate(saturday), FormatDate(sunday))
}

func validateRange(from, to string) *ValidationError {
	vErr := &ValidationError{}
	if !validDate(from) {
		vErr.add("from", "date must be YYYY-MM-DD")
	}
	if !validDate(to) {
		vErr.add("to", "date must be YYYY-MM-DD")
	}
	if !vErr.HasErrors() && to < from {
		vErr.add("to", "end date must not precede start date")
	}
	return vErr
}
