package application

import "time"

const (
	MinistryCommunication MinistryID = 1
	MinistryWorship       MinistryID = 2
	MinistryReception     MinistryID = 3
	MinistryService       MinistryID = 4
)

// Catalog is the read-only reference data seeded once at startup.
type Catalog struct {
	Ministries []Ministry
	Functions  []Function
	Shifts     []Shift
}

// DefaultCatalog returns the reference data shipped with the application.
func DefaultCatalog() Catalog {
	return Catalog{
		Ministries: []Ministry{
			{ID: MinistryCommunication, Name: "Comunicação", Color: "bg-blue-500"},
			{ID: MinistryWorship, Name: "Louvor", Color: "bg-purple-500"},
			{ID: MinistryReception, Name: "Recepção", Color: "bg-green-500"},
			{ID: MinistryService, Name: "Serviço/Limpeza", Color: "bg-orange-500"},
		},
		Functions: []Function{
			{ID: 1, Name: "Projeção", MinistryID: MinistryCommunication},
			{ID: 2, Name: "Iluminação", MinistryID: MinistryCommunication},
			{ID: 3, Name: "Captação de Imagem", MinistryID: MinistryCommunication},
			{ID: 4, Name: "Live", MinistryID: MinistryCommunication},
			{ID: 5, Name: "Vocal", MinistryID: MinistryWorship},
			{ID: 6, Name: "Guitarrista", MinistryID: MinistryWorship},
			{ID: 7, Name: "Baterista", MinistryID: MinistryWorship},
			{ID: 8, Name: "Contrabaixo", MinistryID: MinistryWorship},
			{ID: 9, Name: "Teclado", MinistryID: MinistryWorship},
			{ID: 10, Name: "Violão", MinistryID: MinistryWorship},
			{ID: 13, Name: "Técnico de Som", MinistryID: MinistryWorship},
			{ID: 11, Name: "Recepção", MinistryID: MinistryReception},
			{ID: 12, Name: "Limpeza/Serviço", MinistryID: MinistryService},
		},
		Shifts: []Shift{
			{ID: 1, Name: "Manhã", TimeRange: "08:00 - 12:00"},
			{ID: 2, Name: "Tarde", TimeRange: "13:00 - 17:00"},
			{ID: 3, Name: "Noite", TimeRange: "18:00 - 22:00"},
		},
	}
}

func (c Catalog) function(id int) (Function, bool) {
	for _, f := range c.Functions {
		if f.ID == id {
			return f, true
		}
	}
	return Function{}, false
}

func (c Catalog) ministry(id MinistryID) (Ministry, bool) {
	for _, m := range c.Ministries {
		if m.ID == id {
			return m, true
		}
	}
	return Ministry{}, false
}

func (c Catalog) shift(id int) (Shift, bool) {
	for _, s := range c.Shifts {
		if s.ID == id {
			return s, true
		}
	}
	return Shift{}, false
}

// Seed is the set of defaults used when nothing has been persisted yet.
type Seed struct {
	Servants        []Servant
	Schedules       []Schedule
	Events          []Event
	Users           []User
	RolePermissions RolePermissions
}

// EmptySeed returns a seed with a single administrator and no demo data.
func EmptySeed() Seed {
	return Seed{
		Users: []User{
			{ID: 1, Name: "Administrador", Email: "admin@email.com", Role: RoleAdministrator},
		},
		RolePermissions: DefaultRolePermissions(),
	}
}

// DemoSeed returns the demonstration data set. Schedules and the sample event
// are placed relative to today.
func DemoSeed(today time.Time) Seed {
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	nextSunday := sunday.AddDate(0, 0, 7)
	confStart := today.AddDate(0, 0, 12)
	confEnd := confStart.AddDate(0, 0, 2)

	return Seed{
		Servants: []Servant{
			{ID: 1, Name: "Ana Silva", Phone: "(11) 98765-4321", FunctionIDs: []int{5, 10}, Active: true, Photo: "https://picsum.photos/id/1027/100/100"},
			{ID: 2, Name: "Bruno Costa", Phone: "(11) 91234-5678", FunctionIDs: []int{6, 8}, Active: true, Photo: "https://picsum.photos/id/1005/100/100"},
			{ID: 3, Name: "Carla Dias", Phone: "(21) 99876-5432", FunctionIDs: []int{1}, Active: true, Photo: "https://picsum.photos/id/1011/100/100"},
			{ID: 4, Name: "Daniel Martins", Phone: "(31) 98888-7777", FunctionIDs: []int{7}, Active: true, Photo: "https://picsum.photos/id/1012/100/100"},
			{ID: 5, Name: "Eduarda Lima", Phone: "(51) 97654-3210", FunctionIDs: []int{11}, Active: true, Photo: "https://picsum.photos/id/1013/100/100"},
			{ID: 6, Name: "Fábio Pereira", Phone: "(41) 96543-2109", FunctionIDs: []int{12}, Active: true, Photo: "https://picsum.photos/id/1014/100/100"},
			{ID: 7, Name: "Gabriela Rocha", Phone: "(61) 95432-1098", FunctionIDs: []int{9}, Active: true, Photo: "https://picsum.photos/id/1015/100/100"},
			{ID: 8, Name: "Heitor Santos", Phone: "(71) 94321-0987", FunctionIDs: []int{2, 3}, Active: true, Photo: "https://picsum.photos/id/1016/100/100"},
			{ID: 9, Name: "Isabela Nunes", Phone: "(81) 93210-9876", FunctionIDs: []int{4}, Active: false, Photo: "https://picsum.photos/id/1018/100/100"},
			{ID: 10, Name: "João Vitor", Phone: "(91) 92109-8765", FunctionIDs: []int{10}, Active: true, Photo: "https://picsum.photos/id/1019/100/100"},
		},
		Schedules: []Schedule{
			{
				Date:      FormatDate(sunday),
				Published: true,
				Notes:     "Ensaio geral às 18h no sábado.",
				Items: []ScheduleItem{
					{ID: 1, FunctionID: 5, ServantID: 1, ShiftID: 3},
					{ID: 2, FunctionID: 6, ServantID: 2, ShiftID: 3},
					{ID: 3, FunctionID: 7, ServantID: 4, ShiftID: 3},
					{ID: 4, FunctionID: 9, ServantID: 7, ShiftID: 3},
					{ID: 5, FunctionID: 1, ServantID: 3, ShiftID: 3},
					{ID: 6, FunctionID: 11, ServantID: 5, ShiftID: 3},
				},
			},
			{
				Date: FormatDate(nextSunday),
				Items: []ScheduleItem{
					{ID: 7, FunctionID: 5, ServantID: 1, ShiftID: 3},
					{ID: 8, FunctionID: 10, ServantID: 10, ShiftID: 3},
				},
			},
		},
		Events: []Event{
			{
				ID:        1,
				Title:     "Conferência Anual",
				StartDate: FormatDate(confStart),
				EndDate:   FormatDate(confEnd),
				Location:  "Sede da Igreja",
				Schedules: map[string]Schedule{},
			},
		},
		Users: []User{
			{ID: 1, Name: "João Administrador", Email: "admin@email.com", Role: RoleAdministrator, Photo: "https://picsum.photos/seed/user1/100/100"},
			{ID: 2, Name: "Maria Pastora", Email: "pastora@email.com", Role: RolePastor, Photo: "https://picsum.photos/seed/user2/100/100"},
			{ID: 3, Name: "Carlos Líder", Email: "lider@email.com", Role: RoleLeader, Photo: "https://picsum.photos/seed/user3/100/100"},
			{ID: 4, Name: "Ana Servo", Email: "servo@email.com", Role: RoleServant, Photo: "https://picsum.photos/seed/user4/100/100"},
		},
		RolePermissions: DefaultRolePermissions(),
	}
}
