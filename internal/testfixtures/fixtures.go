package testfixtures

import (
	"github.com/example/escala/internal/application"
)

// ServantOption configures a servant fixture.
type ServantOption func(*application.Servant)

// NewServant returns an active servant holding functionIDs.
func NewServant(name string, functionIDs []int, opts ...ServantOption) application.Servant {
	servant := application.Servant{
		Name:        name,
		Phone:       "(11) 90000-0000",
		FunctionIDs: append([]int(nil), functionIDs...),
		Active:      true,
	}
	for _, opt := range opts {
		opt(&servant)
	}
	return servant
}

// WithServantID sets the servant id.
func WithServantID(id int64) ServantOption {
	return func(s *application.Servant) {
		s.ID = id
	}
}

// Inactive marks the servant inactive.
func Inactive() ServantOption {
	return func(s *application.Servant) {
		s.Active = false
	}
}

// Item builds a schedule item.
func Item(id int64, functionID int, servantID int64, shiftID int) application.ScheduleItem {
	return application.ScheduleItem{ID: id, FunctionID: functionID, ServantID: servantID, ShiftID: shiftID}
}

// NewSchedule returns an unpublished schedule for date.
func NewSchedule(date string, items ...application.ScheduleItem) application.Schedule {
	return application.Schedule{Date: date, Items: items}
}

// NewEvent returns event input spanning start to end.
func NewEvent(title, start, end string) application.EventInput {
	return application.EventInput{Title: title, StartDate: start, EndDate: end, Location: "Sede da Igreja"}
}
