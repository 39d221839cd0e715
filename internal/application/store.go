package application

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/example/escala/internal/persistence"
)

// Store owns every collection of the application. Reads return copies the
// caller may change freely; changes only take effect when submitted back
// through a mutator. Each mutation is written through to the gateway before
// the mutator returns.
//
// Permissions are advisory: mutators never consult the active user's
// permissions. HasPermission exists so callers can decide what to expose.
type Store struct {
	mu          sync.RWMutex
	gateway     *persistence.Gateway
	catalog     Catalog
	idGenerator func() int64
	now         func() time.Time
	logger      *slog.Logger
	reports     *reportCache

	servants     []Servant
	schedules    map[string]Schedule
	events       []Event
	users        []User
	permissions  map[Role]permissionSet
	activeUserID int64
}

// NewStore loads every collection from gateway, falling back to seed for
// anything not stored yet.
func NewStore(ctx context.Context, gateway *persistence.Gateway, seed Seed, idGenerator func() int64, now func() time.Time) *Store {
	return NewStoreWithLogger(ctx, gateway, seed, idGenerator, now, nil)
}

// NewStoreWithLogger is NewStore with a specified logger.
func NewStoreWithLogger(ctx context.Context, gateway *persistence.Gateway, seed Seed, idGenerator func() int64, now func() time.Time, logger *slog.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = timeBasedIDs(now)
	}
	if seed.RolePermissions == nil {
		seed.RolePermissions = DefaultRolePermissions()
	}

	s := &Store{
		gateway:     gateway,
		catalog:     DefaultCatalog(),
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
		reports:     newReportCache(0, 0, now),
	}
	s.load(ctx, seed)
	return s
}

func (s *Store) load(ctx context.Context, seed Seed) {
	s.servants = cloneServants(persistence.Load(ctx, s.gateway, persistence.KeyServants, seed.Servants))
	s.events = cloneEvents(persistence.Load(ctx, s.gateway, persistence.KeyEvents, seed.Events))
	s.users = cloneUsers(persistence.Load(ctx, s.gateway, persistence.KeyUsers, seed.Users))
	s.permissions = toPermissionIndex(persistence.Load(ctx, s.gateway, persistence.KeyRolePermissions, seed.RolePermissions))

	s.schedules = make(map[string]Schedule)
	for _, schedule := range persistence.Load(ctx, s.gateway, persistence.KeySchedules, seed.Schedules) {
		s.schedules[schedule.Date] = schedule.clone()
	}

	var fallback int64
	if len(s.users) > 0 {
		fallback = s.users[0].ID
	}
	s.activeUserID = persistence.Load(ctx, s.gateway, persistence.KeyActiveUserID, fallback)
	if _, ok := s.userIndexLocked(s.activeUserID); !ok {
		s.activeUserID = fallback
	}

	s.logger.With("service", "Store").InfoContext(ctx, "store loaded",
		"servants", len(s.servants),
		"schedules", len(s.schedules),
		"events", len(s.events),
		"users", len(s.users),
	)
}

func (s *Store) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "Store", operation, attrs...)
}

// persistLocked saves a collection. Save failures are logged and do not undo
// the in-memory change.
func (s *Store) persistLocked(ctx context.Context, key string, value any) {
	if err := s.gateway.Save(ctx, key, value); err != nil {
		s.loggerWith(ctx, "persist", "key", key).ErrorContext(ctx, "failed to persist collection", "error", err)
	}
}

func (s *Store) saveServantsLocked(ctx context.Context) {
	s.reports.Invalidate()
	s.persistLocked(ctx, persistence.KeyServants, cloneServants(s.servants))
}

func (s *Store) saveSchedulesLocked(ctx context.Context) {
	s.reports.Invalidate()
	s.persistLocked(ctx, persistence.KeySchedules, s.sortedSchedulesLocked())
}

func (s *Store) saveEventsLocked(ctx context.Context) {
	s.persistLocked(ctx, persistence.KeyEvents, cloneEvents(s.events))
}

func (s *Store) saveUsersLocked(ctx context.Context) {
	s.persistLocked(ctx, persistence.KeyUsers, cloneUsers(s.users))
}

func (s *Store) saveActiveUserLocked(ctx context.Context) {
	s.persistLocked(ctx, persistence.KeyActiveUserID, s.activeUserID)
}

// nextIDLocked returns a non-zero id accepted by free.
func (s *Store) nextIDLocked(free func(int64) bool) int64 {
	for {
		id := s.idGenerator()
		if id != 0 && free(id) {
			return id
		}
	}
}

// Ministries returns the ministry catalog.
func (s *Store) Ministries() []Ministry {
	return append([]Ministry(nil), s.catalog.Ministries...)
}

// Functions returns the function catalog.
func (s *Store) Functions() []Function {
	return append([]Function(nil), s.catalog.Functions...)
}

// Shifts returns the shift catalog.
func (s *Store) Shifts() []Shift {
	return append([]Shift(nil), s.catalog.Shifts...)
}

// FunctionsOf returns the functions belonging to a ministry.
func (s *Store) FunctionsOf(ministryID MinistryID) []Function {
	var out []Function
	for _, f := range s.catalog.Functions {
		if f.MinistryID == ministryID {
			out = append(out, f)
		}
	}
	return out
}

// Servants returns every servant in insertion order.
func (s *Store) Servants() []Servant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneServants(s.servants)
}

// Schedules returns every schedule ordered by date.
func (s *Store) Schedules() []Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedSchedulesLocked()
}

// Events returns every event in insertion order.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEvents(s.events)
}

// Users returns every user in insertion order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users)
}

// CurrentUser returns the active user. ok is false when the store has no users.
func (s *Store) CurrentUser() (user User, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUserLocked()
}

func (s *Store) currentUserLocked() (User, bool) {
	idx, ok := s.userIndexLocked(s.activeUserID)
	if !ok {
		return User{}, false
	}
	return s.users[idx], true
}

func (s *Store) sortedSchedulesLocked() []Schedule {
	out := make([]Schedule, 0, len(s.schedules))
	for _, schedule := range s.schedules {
		out = append(out, schedule.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (s *Store) servantIndexLocked(id int64) (int, bool) {
	for i, servant := range s.servants {
		if servant.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) userIndexLocked(id int64) (int, bool) {
	for i, user := range s.users {
		if user.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) eventIndexLocked(id int64) (int, bool) {
	for i, event := range s.events {
		if event.ID == id {
			return i, true
		}
	}
	return -1, false
}

// timeBasedIDs mints millisecond timestamps, bumping forward when two ids
// would collide. Callers serialise access.
func timeBasedIDs(now func() time.Time) func() int64 {
	var last int64
	return func() int64 {
		id := now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		last = id
		return id
	}
}

func cloneServant(servant Servant) Servant {
	out := servant
	out.FunctionIDs = append([]int(nil), servant.FunctionIDs...)
	return out
}

func cloneServants(servants []Servant) []Servant {
	out := make([]Servant, 0, len(servants))
	for _, servant := range servants {
		out = append(out, cloneServant(servant))
	}
	return out
}

func cloneEvent(event Event) Event {
	out := event
	out.Schedules = make(map[string]Schedule, len(event.Schedules))
	for date, schedule := range event.Schedules {
		out.Schedules[date] = schedule.clone()
	}
	return out
}

func cloneEvents(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, event := range events {
		out = append(out, cloneEvent(event))
	}
	return out
}

func cloneUsers(users []User) []User {
	return append(make([]User, 0, len(users)), users...)
}
