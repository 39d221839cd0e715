package application

import (
	"context"
	"fmt"
	"strings"
)

// ListServants returns the servants matching filter, ordered by name.
func (s *Store) ListServants(filter ServantFilter) []Servant {
	query := foldName(filter.NameQuery)

	var ministryFunctions map[int]struct{}
	if filter.MinistryID != 0 {
		ministryFunctions = make(map[int]struct{})
		for _, f := range s.FunctionsOf(filter.MinistryID) {
			ministryFunctions[f.ID] = struct{}{}
		}
	}

	s.mu.RLock()
	var out []Servant
	for _, servant := range s.servants {
		if filter.ActiveOnly && !servant.Active {
			continue
		}
		if query != "" && !strings.Contains(foldName(servant.Name), query) {
			continue
		}
		if ministryFunctions != nil && !holdsAny(servant, ministryFunctions) {
			continue
		}
		out = append(out, cloneServant(servant))
	}
	s.mu.RUnlock()

	sortByName(out, func(sv Servant) string { return sv.Name }, func(a, b Servant) bool { return a.ID < b.ID })
	return out
}

// EligibleServants returns the active servants holding functionID.
func (s *Store) EligibleServants(functionID int) []Servant {
	s.mu.RLock()
	var out []Servant
	for _, servant := range s.servants {
		if servant.Active && servant.HasFunction(functionID) {
			out = append(out, cloneServant(servant))
		}
	}
	s.mu.RUnlock()

	sortByName(out, func(sv Servant) string { return sv.Name }, func(a, b Servant) bool { return a.ID < b.ID })
	return out
}

func holdsAny(servant Servant, functions map[int]struct{}) bool {
	for _, id := range servant.FunctionIDs {
		if _, ok := functions[id]; ok {
			return true
		}
	}
	return false
}

// Servant returns the servant with id.
func (s *Store) Servant(id int64) (Servant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.servantIndexLocked(id)
	if !ok {
		return Servant{}, false
	}
	return cloneServant(s.servants[idx]), true
}

// AddServant stores a new servant under a fresh id, ignoring servant.ID.
// Servants without a photo get a placeholder derived from the id.
func (s *Store) AddServant(ctx context.Context, servant Servant) (created Servant, err error) {
	if s == nil {
		return Servant{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "AddServant")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add servant", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("servant_id", created.ID).InfoContext(ctx, "servant added")
	}()

	servant.FunctionIDs = normalizeFunctionIDs(servant.FunctionIDs)
	if vErr := s.validateServant(servant); vErr.HasErrors() {
		return Servant{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created = cloneServant(servant)
	created.ID = s.nextIDLocked(func(id int64) bool {
		_, taken := s.servantIndexLocked(id)
		return !taken
	})
	if strings.TrimSpace(created.Photo) == "" {
		created.Photo = PlaceholderPhoto(created.ID)
	}

	s.servants = append(s.servants, created)
	s.saveServantsLocked(ctx)
	return cloneServant(created), nil
}

// UpdateServant replaces the servant sharing servant.ID.
func (s *Store) UpdateServant(ctx context.Context, servant Servant) (updated Servant, err error) {
	if s == nil {
		return Servant{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "UpdateServant", "servant_id", servant.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update servant", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "servant updated", "active", updated.Active)
	}()

	servant.FunctionIDs = normalizeFunctionIDs(servant.FunctionIDs)
	if vErr := s.validateServant(servant); vErr.HasErrors() {
		return Servant{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.servantIndexLocked(servant.ID)
	if !ok {
		return Servant{}, ErrNotFound
	}
	updated = cloneServant(servant)
	s.servants[idx] = updated
	s.saveServantsLocked(ctx)
	return cloneServant(updated), nil
}

// DeleteServant removes the servant with id. Schedules naming the servant are
// left as they are. Deleting an unknown id is a no-op.
func (s *Store) DeleteServant(ctx context.Context, id int64) error {
	if s == nil {
		return fmt.Errorf("Store is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.servantIndexLocked(id)
	if !ok {
		return nil
	}
	s.servants = append(s.servants[:idx], s.servants[idx+1:]...)
	s.saveServantsLocked(ctx)
	s.loggerWith(ctx, "DeleteServant", "servant_id", id).InfoContext(ctx, "servant deleted")
	return nil
}

func (s *Store) validateServant(servant Servant) *ValidationError {
	vErr := &ValidationError{}
	for _, id := range servant.FunctionIDs {
		if _, ok := s.catalog.function(id); !ok {
			vErr.add("function_ids", fmt.Sprintf("unknown function id: %d", id))
			break
		}
	}
	return vErr
}

// normalizeFunctionIDs drops duplicates while keeping the first occurrence order.
func normalizeFunctionIDs(ids []int) []int {
	if len(ids) == 0 {
		return []int{}
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// User returns the user with id.
func (s *Store) User(id int64) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.userIndexLocked(id)
	if !ok {
		return User{}, false
	}
	return s.users[idx], true
}

// AddUser stores a new user under a fresh id, ignoring user.ID.
func (s *Store) AddUser(ctx context.Context, user User) (created User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "AddUser")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", created.ID).InfoContext(ctx, "user added")
	}()

	if vErr := validateUser(user); vErr.HasErrors() {
		return User{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created = user
	created.ID = s.nextIDLocked(func(id int64) bool {
		_, taken := s.userIndexLocked(id)
		return !taken
	})
	s.users = append(s.users, created)
	s.saveUsersLocked(ctx)
	return created, nil
}

// UpdateUser replaces the user sharing user.ID. When that user is the active
// user, reads of the active user return the new value.
func (s *Store) UpdateUser(ctx context.Context, user User) (updated User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "UpdateUser", "user_id", user.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user updated")
	}()

	if vErr := validateUser(user); vErr.HasErrors() {
		return User{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.userIndexLocked(user.ID)
	if !ok {
		return User{}, ErrNotFound
	}
	s.users[idx] = user
	s.saveUsersLocked(ctx)
	if s.activeUserID == user.ID {
		s.saveActiveUserLocked(ctx)
	}
	return user, nil
}

// DeleteUser removes the user with id. When the active user is removed the
// first remaining user becomes active. Deleting an unknown id is a no-op.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if s == nil {
		return fmt.Errorf("Store is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.userIndexLocked(id)
	if !ok {
		return nil
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	s.saveUsersLocked(ctx)

	if s.activeUserID == id {
		s.activeUserID = 0
		if len(s.users) > 0 {
			s.activeUserID = s.users[0].ID
		}
		s.saveActiveUserLocked(ctx)
	}

	s.loggerWith(ctx, "DeleteUser", "user_id", id).InfoContext(ctx, "user deleted")
	return nil
}

func validateUser(user User) *ValidationError {
	vErr := &ValidationError{}
	if !user.Role.Valid() {
		vErr.add("role", "role is invalid")
	}
	return vErr
}

// Event returns the event with id.
func (s *Store) Event(id int64) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.eventIndexLocked(id)
	if !ok {
		return Event{}, false
	}
	return cloneEvent(s.events[idx]), true
}

// AddEvent stores a new event under a fresh id with no schedule overrides.
func (s *Store) AddEvent(ctx context.Context, input EventInput) (created Event, err error) {
	if s == nil {
		return Event{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "AddEvent")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", created.ID).InfoContext(ctx, "event added")
	}()

	if vErr := validateEventDates(input.StartDate, input.EndDate); vErr.HasErrors() {
		return Event{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created = Event{
		Title:     input.Title,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Location:  input.Location,
		Schedules: map[string]Schedule{},
	}
	created.ID = s.nextIDLocked(func(id int64) bool {
		_, taken := s.eventIndexLocked(id)
		return !taken
	})
	s.events = append(s.events, created)
	s.saveEventsLocked(ctx)
	return cloneEvent(created), nil
}

// UpdateEvent replaces the event sharing event.ID.
func (s *Store) UpdateEvent(ctx context.Context, event Event) (updated Event, err error) {
	if s == nil {
		return Event{}, fmt.Errorf("Store is nil")
	}

	logger := s.loggerWith(ctx, "UpdateEvent", "event_id", event.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event updated")
	}()

	if vErr := validateEventDates(event.StartDate, event.EndDate); vErr.HasErrors() {
		return Event{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.eventIndexLocked(event.ID)
	if !ok {
		return Event{}, ErrNotFound
	}
	updated = cloneEvent(event)
	s.events[idx] = updated
	s.saveEventsLocked(ctx)
	return cloneEvent(updated), nil
}

// DeleteEvent removes the event with id. Schedules are keyed by date and are
// never removed along with an event. Deleting an unknown id is a no-op.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	if s == nil {
		return fmt.Errorf("Store is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.eventIndexLocked(id)
	if !ok {
		return nil
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	s.saveEventsLocked(ctx)
	s.loggerWith(ctx, "DeleteEvent", "event_id", id).InfoContext(ctx, "event deleted")
	return nil
}

func validateEventDates(start, end string) *ValidationError {
	vErr := &ValidationError{}
	if !validDate(start) {
		vErr.add("start_date", "date must be YYYY-MM-DD")
	}
	if !validDate(end) {
		vErr.add("end_date", "date must be YYYY-MM-DD")
	}
	if !vErr.HasErrors() && end < start {
		vErr.add("end_date", "end date must not precede start date")
	}
	return vErr
}
