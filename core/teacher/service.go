package teacher

import (
	"context"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
)

// TableName is the record store table holding teachers.
const TableName = "teacher_c"

var (
	// errors
	ErrNotFound = core.NewNotFoundError("teacher not found")

	// Fields maps Teacher JSON names to record store columns.
	Fields = records.FieldMap{
		{Name: "id", Column: records.IDColumn},
		{Name: "first_name", Column: "first_name_c"},
		{Name: "last_name", Column: "last_name_c"},
		{Name: "email", Column: "email_c"},
		{Name: "phone", Column: "phone_c"},
		{Name: "subjects", Column: "subjects_c", Joined: true},
		{Name: "hire_date", Column: "hire_date_c"},
		{Name: "department", Column: "department_c"},
		{Name: "status", Column: "status_c"},
	}
)

type Service struct {
	table *records.Table[Teacher]
}

func NewService(store records.Store, logger core.Logger) *Service {
	return &Service{
		table: &records.Table[Teacher]{
			Name:     TableName,
			Fields:   Fields,
			NotFound: ErrNotFound,
			Store:    store,
			Logger:   logger,
		},
	}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.table.All(ctx)
}

// Query fetches all teachers, then filters and orders them.
func (svc *Service) Query(ctx context.Context, filter QueryFilter, orderings []core.Ordering) ([]Teacher, error) {
	teachers, err := svc.table.All(ctx)
	if err != nil {
		return nil, err
	}
	teachers = Filter(teachers, filter)
	Sort(teachers, orderings)
	return teachers, nil
}

// Departments lists the departments in use, in first-seen order.
func (svc *Service) Departments(ctx context.Context) ([]string, error) {
	teachers, err := svc.table.All(ctx)
	if err != nil {
		return nil, err
	}
	return Departments(teachers), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Teacher, error) {
	return svc.table.Get(ctx, id)
}

// Create returns nil when the record store rejected the record.
func (svc *Service) Create(ctx context.Context, p Payload) (*Teacher, error) {
	return svc.table.Create(ctx, p, p.FullName())
}

// Update returns nil when the record store rejected the record.
func (svc *Service) Update(ctx context.Context, id int, p Payload) (*Teacher, error) {
	return svc.table.Update(ctx, id, p, p.FullName())
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.table.Delete(ctx, id)
}
