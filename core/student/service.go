package student

import (
	"context"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
)

// TableName is the record store table holding students.
const TableName = "student_c"

var (
	// errors
	ErrNotFound = core.NewNotFoundError("student not found")

	// Fields maps Student JSON names to record store columns.
	Fields = records.FieldMap{
		{Name: "id", Column: records.IDColumn},
		{Name: "first_name", Column: "first_name_c"},
		{Name: "last_name", Column: "last_name_c"},
		{Name: "email", Column: "email_c"},
		{Name: "phone", Column: "phone_c"},
		{Name: "date_of_birth", Column: "date_of_birth_c"},
		{Name: "enrollment_date", Column: "enrollment_date_c"},
		{Name: "status", Column: "status_c"},
		{Name: "grade", Column: "grade_c"},
		{Name: "parent_contact", Column: "parent_contact_c"},
		{Name: "address", Column: "address_c"},
		{Name: "score", Column: "score_c"},
	}
)

type Service struct {
	table *records.Table[Student]
}

func NewService(store records.Store, logger core.Logger) *Service {
	return &Service{
		table: &records.Table[Student]{
			Name:     TableName,
			Fields:   Fields,
			NotFound: ErrNotFound,
			Store:    store,
			Logger:   logger,
		},
	}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.table.All(ctx)
}

// Query fetches all students, then filters and orders them.
func (svc *Service) Query(ctx context.Context, filter QueryFilter, orderings []core.Ordering) ([]Student, error) {
	students, err := svc.table.All(ctx)
	if err != nil {
		return nil, err
	}
	students = Filter(students, filter)
	Sort(students, orderings)
	return students, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.table.Get(ctx, id)
}

// Create returns nil when the record store rejected the record.
func (svc *Service) Create(ctx context.Context, p Payload) (*Student, error) {
	return svc.table.Create(ctx, p, p.FullName())
}

// Update returns nil when the record store rejected the record.
func (svc *Service) Update(ctx context.Context, id int, p Payload) (*Student, error) {
	return svc.table.Update(ctx, id, p, p.FullName())
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.table.Delete(ctx, id)
}
