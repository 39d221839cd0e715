package application

// MinistryID identifies one of the ministries in the reference catalog.
type MinistryID int

// Ministry groups the functions volunteers can serve in.
type Ministry struct {
	ID    MinistryID `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
}

// Function is a duty inside a ministry.
type Function struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	MinistryID MinistryID `json:"ministry_id"`
}

// Shift is a named time window used by schedule items.
type Shift struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	TimeRange string `json:"time_range"`
}

// Servant is a volunteer eligible for assignment to functions. Entity ids
// travel as JSON strings: snowflake ids do not fit in a float64.
type Servant struct {
	ID          int64  `json:"id,string"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Photo       string `json:"photo,omitempty"`
	FunctionIDs []int  `json:"function_ids"`
	Active      bool   `json:"active"`
}

// HasFunction reports whether the servant holds the function.
func (s Servant) HasFunction(functionID int) bool {
	for _, id := range s.FunctionIDs {
		if id == functionID {
			return true
		}
	}
	return false
}

// Unassigned is the servant id used by schedule items without a servant.
const Unassigned int64 = 0

// ScheduleItem assigns a servant to a function during a shift.
type ScheduleItem struct {
	ID         int64 `json:"id,string"`
	FunctionID int   `json:"function_id"`
	ServantID  int64 `json:"servant_id,string"`
	ShiftID    int   `json:"shift_id"`
}

// Assigned reports whether a servant has been chosen for the item.
func (i ScheduleItem) Assigned() bool {
	return i.ServantID != Unassigned
}

// Schedule holds every assignment for a single calendar date. Date is the
// unique key in YYYY-MM-DD form. Items is never nil on schedules returned by
// the store.
type Schedule struct {
	Date      string         `json:"date"`
	Items     []ScheduleItem `json:"items"`
	Notes     string         `json:"notes,omitempty"`
	Published bool           `json:"published"`
}

// WithItem returns a copy of the schedule with item appended.
func (s Schedule) WithItem(item ScheduleItem) Schedule {
	out := s.clone()
	out.Items = append(out.Items, item)
	return out
}

// ReplaceItem returns a copy of the schedule where the item sharing
// item.ID is replaced. The schedule is returned unchanged when no item matches.
func (s Schedule) ReplaceItem(item ScheduleItem) Schedule {
	out := s.clone()
	for i := range out.Items {
		if out.Items[i].ID == item.ID {
			out.Items[i] = item
			break
		}
	}
	return out
}

// WithoutItem returns a copy of the schedule without the item with the given id.
func (s Schedule) WithoutItem(itemID int64) Schedule {
	out := s.clone()
	kept := out.Items[:0]
	for _, item := range out.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	out.Items = kept
	return out
}

func (s Schedule) clone() Schedule {
	out := s
	out.Items = make([]ScheduleItem, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// EventInput captures the caller provided fields of an event.
type EventInput struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Location  string `json:"location"`
}

// Event is a multi-day occasion. Schedules is kept for compatibility with
// stored data and is always initialised empty.
type Event struct {
	ID        int64               `json:"id,string"`
	Title     string              `json:"title"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Location  string              `json:"location"`
	Schedules map[string]Schedule `json:"schedules"`
}

// User is an operator account of the application.
type User struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Photo string `json:"photo,omitempty"`
}

// ServantFilter narrows servant listings.
type ServantFilter struct {
	NameQuery  string
	MinistryID MinistryID
	ActiveOnly bool
}

// ParticipationRow is one assignment joined with its reference data.
type ParticipationRow struct {
	Date     string   `json:"date"`
	Ministry Ministry `json:"ministry"`
	Function Function `json:"function"`
	Servant  Servant  `json:"servant"`
}

// MinistryParticipation counts how often a servant served in a ministry.
type MinistryParticipation struct {
	Ministry       string `json:"ministry"`
	Servant        string `json:"servant"`
	Participations int    `json:"participations"`
}

// ServantParticipation is one entry of a servant's history.
type ServantParticipation struct {
	Date     string `json:"date"`
	Ministry string `json:"ministry"`
	Function string `json:"function"`
}

// Duty is a function a servant was scheduled for on a date.
type Duty struct {
	Date     string   `json:"date"`
	Function Function `json:"function"`
}

// Reminder lists the duties of one servant.
type Reminder struct {
	Servant Servant `json:"servant"`
	Duties  []Duty  `json:"duties"`
}
