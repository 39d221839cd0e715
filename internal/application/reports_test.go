package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_ParticipationReport_KeepsInactiveServants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, Seed{
		Servants: []Servant{{ID: 1, Name: "Ana Silva", FunctionIDs: []int{5}, Active: true}},
		Users:    []User{{ID: 1, Name: "Admin", Role: RoleAdministrator}},
	})

	if _, err := store.UpdateServant(ctx, Servant{ID: 1, Name: "Ana Silva", FunctionIDs: []int{5}, Active: false}); err != nil {
		t.Fatalf("UpdateServant returned error: %v", err)
	}
	schedule := Schedule{
		Date:      "2024-07-28",
		Items:     []ScheduleItem{{ID: 7, FunctionID: 5, ServantID: 1, ShiftID: 3}},
		Published: true,
	}
	if _, err := store.AddSchedule(ctx, schedule); err != nil {
		t.Fatalf("AddSchedule returned error: %v", err)
	}

	rows, err := store.ParticipationReport("2024-07-01", "2024-07-31")
	if err != nil {
		t.Fatalf("ParticipationReport returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row.Date != "2024-07-28" || row.Servant.ID != 1 || row.Servant.Active {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Function.ID != 5 || row.Ministry.ID != MinistryWorship {
		t.Fatalf("expected vocal under worship, got %+v / %+v", row.Function, row.Ministry)
	}
}

func TestStore_ParticipationReport_SkipsUnassignedAndDangling(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, DemoSeed(referenceDay))

	schedule := Schedule{
		Date: "2024-06-02",
		Items: []ScheduleItem{
			{ID: 1, FunctionID: 5, ServantID: 1, ShiftID: 1},
			{ID: 2, FunctionID: 6, ServantID: Unassigned, ShiftID: 1},
			{ID: 3, FunctionID: 7, ServantID: 4, ShiftID: 1},
		},
	}
	if _, err := store.AddSchedule(ctx, schedule); err != nil {
		t.Fatalf("AddSchedule returned error: %v", err)
	}
	if err := store.DeleteServant(ctx, 4); err != nil {
		t.Fatalf("DeleteServant returned error: %v", err)
	}

	rows, err := store.ParticipationReport("2024-06-02", "2024-06-02")
	if err != nil {
		t.Fatalf("ParticipationReport returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Servant.ID != 1 {
		t.Fatalf("expected only the assigned existing servant, got %+v", rows)
	}
}

func TestStore_ParticipationReport_ReflectsChangesAfterCaching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, DemoSeed(referenceDay))
	add := func(date string, id int64) {
		t.Helper()
		_, err := store.AddSchedule(ctx, Schedule{Date: date, Items: []ScheduleItem{{ID: id, FunctionID: 5, ServantID: 1, ShiftID: 1}}})
		if err != nil {
			t.Fatalf("AddSchedule returned error: %v", err)
		}
	}

	add("2024-06-02", 1)
	first, err := store.ParticipationReport("2024-06-01", "2024-06-30")
	if err != nil || len(first) != 1 {
		t.Fatalf("expected one row, got %d (%v)", len(first), err)
	}

	add("2024-06-09", 2)
	second, err := store.ParticipationReport("2024-06-01", "2024-06-30")
	if err != nil || len(second) != 2 {
		t.Fatalf("expected cached report to be invalidated, got %d rows (%v)", len(second), err)
	}

	servant, _ := store.Servant(1)
	servant.Name = "Ana S."
	if _, err := store.UpdateServant(ctx, servant); err != nil {
		t.Fatalf("UpdateServant returned error: %v", err)
	}
	third, _ := store.ParticipationReport("2024-06-01", "2024-06-30")
	if third[0].Servant.Name != "Ana S." {
		t.Fatalf("expected servant change to show up, got %q", third[0].Servant.Name)
	}
}

func TestStore_ParticipationReport_RejectsBadRange(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, EmptySeed())
	var vErr *ValidationError
	if _, err := store.ParticipationReport("2024-07-31", "2024-07-01"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := store.ParticipationReport("julho", "2024-07-01"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestStore_MinistryReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, DemoSeed(referenceDay))
	schedules := []Schedule{
		{Date: "2024-06-02", Items: []ScheduleItem{
			{ID: 1, FunctionID: 5, ServantID: 2, ShiftID: 1},
			{ID: 2, FunctionID: 10, ServantID: 1, ShiftID: 1},
			{ID: 3, FunctionID: 1, ServantID: 3, ShiftID: 1},
		}},
		{Date: "2024-06-09", Items: []ScheduleItem{
			{ID: 4, FunctionID: 5, ServantID: 1, ShiftID: 1},
		}},
	}
	for _, s := range schedules {
		if _, err := store.AddSchedule(ctx, s); err != nil {
			t.Fatalf("AddSchedule returned error: %v", err)
		}
	}

	got, err := store.MinistryReport("2024-06-01", "2024-06-30")
	if err != nil {
		t.Fatalf("MinistryReport returned error: %v", err)
	}
	want := []MinistryParticipation{
		{Ministry: "Comunicação", Servant: "Carla Dias", Participations: 1},
		{Ministry: "Louvor", Servant: "Ana Silva", Participations: 2},
		{Ministry: "Louvor", Servant: "Bruno Costa", Participations: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestStore_ServantReport(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, DemoSeed(referenceDay))
	sunday := FormatDate(referenceDay.AddDate(0, 0, -int(referenceDay.Weekday())))
	nextSunday := FormatDate(referenceDay.AddDate(0, 0, 7-int(referenceDay.Weekday())))

	got, err := store.ServantReport(1, sunday, nextSunday)
	if err != nil {
		t.Fatalf("ServantReport returned error: %v", err)
	}
	want := []ServantParticipation{
		{Date: sunday, Ministry: "Louvor", Function: "Vocal"},
		{Date: nextSunday, Ministry: "Louvor", Function: "Vocal"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if _, err := store.ServantReport(404, sunday, nextSunday); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Reminders(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, DemoSeed(referenceDay))
	sunday := FormatDate(referenceDay.AddDate(0, 0, -int(referenceDay.Weekday())))
	nextSunday := FormatDate(referenceDay.AddDate(0, 0, 7-int(referenceDay.Weekday())))

	reminders := store.Reminders(nextSunday, sunday, sunday, "2030-01-01")
	if len(reminders) != 7 {
		t.Fatalf("expected 7 servants to be reminded, got %d", len(reminders))
	}
	first := reminders[0]
	if first.Servant.Name != "Ana Silva" {
		t.Fatalf("expected reminders ordered by name, got %q first", first.Servant.Name)
	}
	if len(first.Duties) != 2 || first.Duties[0].Date != sunday || first.Duties[1].Date != nextSunday {
		t.Fatalf("expected two chronological duties for Ana, got %+v", first.Duties)
	}
	last := reminders[len(reminders)-1]
	if last.Servant.Name != "João Vitor" || last.Duties[0].Function.Name != "Violão" {
		t.Fatalf("unexpected last reminder: %+v", last)
	}
}

func TestStore_Dashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, DemoSeed(referenceDay))
	sunday := FormatDate(referenceDay.AddDate(0, 0, -int(referenceDay.Weekday())))

	schedule, _ := store.GetScheduleByDate(sunday)
	schedule = schedule.WithItem(ScheduleItem{ID: 50, FunctionID: 12, ServantID: Unassigned, ShiftID: 1})
	if _, err := store.UpdateSchedule(ctx, schedule); err != nil {
		t.Fatalf("UpdateSchedule returned error: %v", err)
	}
	if _, err := store.AddEvent(ctx, EventInput{Title: "Culto antigo", StartDate: "2020-01-01", EndDate: "2020-01-02"}); err != nil {
		t.Fatalf("AddEvent returned error: %v", err)
	}

	d := store.Dashboard(referenceDay)
	if d.ActiveServants != 9 {
		t.Fatalf("expected 9 active servants, got %d", d.ActiveServants)
	}
	if len(d.Week) != 1 || d.Week[0].Date != sunday {
		t.Fatalf("expected this week's schedule, got %+v", d.Week)
	}
	if d.UnassignedItems != 1 {
		t.Fatalf("expected 1 unassigned item, got %d", d.UnassignedItems)
	}
	if len(d.Weekend) != 1 {
		t.Fatalf("expected next sunday in the weekend view, got %+v", d.Weekend)
	}
	if len(d.UpcomingEvents) != 1 || d.UpcomingEvents[0].Title != "Conferência Anual" {
		t.Fatalf("expected only the upcoming conference, got %+v", d.UpcomingEvents)
	}
}

func TestReportCache(t *testing.T) {
	t.Parallel()

	current := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cache := newReportCache(time.Second, 2, func() time.Time { return current })

	original := []ParticipationRow{{Date: "2024-05-05", Servant: Servant{ID: 1, FunctionIDs: []int{5}}}}
	cache.Store("a", original)
	original[0].Servant.FunctionIDs[0] = 99

	cached, ok := cache.Get("a")
	if !ok || cached[0].Servant.FunctionIDs[0] != 5 {
		t.Fatalf("expected an independent cached copy, got %+v (ok=%v)", cached, ok)
	}

	cache.Store("b", nil)
	cache.Store("c", nil)
	if len(cache.entries) > 2 {
		t.Fatalf("expected cache to stay within capacity, got %d entries", len(cache.entries))
	}

	current = current.Add(2 * time.Second)
	if _, ok := cache.Get("c"); ok {
		t.Fatalf("expected entry to expire")
	}

	cache.Store("d", original)
	cache.Invalidate()
	if _, ok := cache.Get("d"); ok {
		t.Fatalf("expected cache to be empty after invalidation")
	}
}
