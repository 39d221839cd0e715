package application

import (
	"sort"
	"time"
)

// ParticipationReport flattens every assignment dated within [from, to] into
// date, ministry, function and servant rows ordered by date. Unassigned items
// and items whose function or servant no longer exists are skipped. Inactive
// servants still appear.
func (s *Store) ParticipationReport(from, to string) ([]ParticipationRow, error) {
	if vErr := validateRange(from, to); vErr.HasErrors() {
		return nil, vErr
	}

	key := reportCacheKey(from, to)
	if rows, ok := s.reports.Get(key); ok {
		return rows, nil
	}

	s.mu.RLock()
	rows := s.participationLocked(from, to, func(Servant) bool { return true })
	s.reports.Store(key, rows)
	s.mu.RUnlock()
	return rows, nil
}

func (s *Store) participationLocked(from, to string, include func(Servant) bool) []ParticipationRow {
	var rows []ParticipationRow
	for _, schedule := range s.schedulesBetweenLocked(from, to) {
		for _, item := range schedule.Items {
			if !item.Assigned() {
				continue
			}
			function, ok := s.catalog.function(item.FunctionID)
			if !ok {
				continue
			}
			ministry, ok := s.catalog.ministry(function.MinistryID)
			if !ok {
				continue
			}
			idx, ok := s.servantIndexLocked(item.ServantID)
			if !ok {
				continue
			}
			servant := s.servants[idx]
			if !include(servant) {
				continue
			}
			rows = append(rows, ParticipationRow{
				Date:     schedule.Date,
				Ministry: ministry,
				Function: function,
				Servant:  cloneServant(servant),
			})
		}
	}
	return rows
}

// MinistryReport counts participations per ministry and servant within
// [from, to]. Rows follow the catalog ministry order, then servant name.
func (s *Store) MinistryReport(from, to string) ([]MinistryParticipation, error) {
	rows, err := s.ParticipationReport(from, to)
	if err != nil {
		return nil, err
	}

	type key struct {
		ministry MinistryID
		servant  int64
	}
	counts := make(map[key]*MinistryParticipation)
	var order []key
	for _, row := range rows {
		k := key{ministry: row.Ministry.ID, servant: row.Servant.ID}
		entry, ok := counts[k]
		if !ok {
			entry = &MinistryParticipation{Ministry: row.Ministry.Name, Servant: row.Servant.Name}
			counts[k] = entry
			order = append(order, k)
		}
		entry.Participations++
	}

	sortByName(order, func(k key) string { return counts[k].Servant }, func(a, b key) bool { return a.servant < b.servant })
	sort.SliceStable(order, func(i, j int) bool { return order[i].ministry < order[j].ministry })

	out := make([]MinistryParticipation, 0, len(order))
	for _, k := range order {
		out = append(out, *counts[k])
	}
	return out, nil
}

// ServantReport lists the assignments of one servant within [from, to].
func (s *Store) ServantReport(servantID int64, from, to string) ([]ServantParticipation, error) {
	if vErr := validateRange(from, to); vErr.HasErrors() {
		return nil, vErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.servantIndexLocked(servantID); !ok {
		return nil, ErrNotFound
	}

	rows := s.participationLocked(from, to, func(sv Servant) bool { return sv.ID == servantID })
	out := make([]ServantParticipation, 0, len(rows))
	for _, row := range rows {
		out = append(out, ServantParticipation{
			Date:     row.Date,
			Ministry: row.Ministry.Name,
			Function: row.Function.Name,
		})
	}
	return out, nil
}

// Reminders groups the duties scheduled on dates by servant, ordered by
// servant name. Dates without a schedule contribute nothing.
func (s *Store) Reminders(dates ...string) []Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	byServant := make(map[int64]*Reminder)
	var order []int64
	seenDate := make(map[string]struct{}, len(sorted))
	for _, date := range sorted {
		if _, dup := seenDate[date]; dup {
			continue
		}
		seenDate[date] = struct{}{}

		for _, row := range s.participationLocked(date, date, func(Servant) bool { return true }) {
			reminder, ok := byServant[row.Servant.ID]
			if !ok {
				reminder = &Reminder{Servant: row.Servant}
				byServant[row.Servant.ID] = reminder
				order = append(order, row.Servant.ID)
			}
			reminder.Duties = append(reminder.Duties, Duty{Date: row.Date, Function: row.Function})
		}
	}

	out := make([]Reminder, 0, len(order))
	for _, id := range order {
		out = append(out, *byServant[id])
	}
	sortByName(out, func(r Reminder) string { return r.Servant.Name }, func(a, b Reminder) bool { return a.Servant.ID < b.Servant.ID })
	return out
}

// Dashboard summarises the state of the ministry around a reference day.
type Dashboard struct {
	ActiveServants  int        `json:"active_servants"`
	Week            []Schedule `json:"week"`
	Weekend         []Schedule `json:"weekend"`
	UpcomingEvents  []Event    `json:"upcoming_events"`
	UnassignedItems int        `json:"unassigned_items"`
}

// Dashboard builds the summary for the week containing ref.
func (s *Store) Dashboard(ref time.Time) Dashboard {
	d := Dashboard{
		Week:           append([]Schedule{}, s.WeekSchedules(ref)...),
		Weekend:        append([]Schedule{}, s.WeekendSchedules(ref)...),
		UpcomingEvents: []Event{},
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, servant := range s.servants {
		if servant.Active {
			d.ActiveServants++
		}
	}
	for _, schedule := range d.Week {
		for _, item := range schedule.Items {
			if !item.Assigned() {
				d.UnassignedItems++
			}
		}
	}

	today := FormatDate(ref)
	for _, event := range s.events {
		if event.EndDate >= today {
			d.UpcomingEvents = append(d.UpcomingEvents, cloneEvent(event))
		}
	}
	sort.SliceStable(d.UpcomingEvents, func(i, j int) bool {
		return d.UpcomingEvents[i].StartDate < d.UpcomingEvents[j].StartDate
	})
	return d
}
