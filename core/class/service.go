package class

import (
	"context"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/records"
)

// TableName is the record store table holding classes.
const TableName = "class_c"

var (
	// errors
	ErrNotFound = core.NewNotFoundError("class not found")

	// Fields maps Class JSON names to record store columns.
	Fields = records.FieldMap{
		{Name: "id", Column: records.IDColumn},
		{Name: "name", Column: "name_c"},
		{Name: "subject", Column: "subject_c"},
		{Name: "teacher_id", Column: "teacher_id_c"},
		{Name: "student_ids", Column: "student_ids_c", Joined: true},
		{Name: "schedule", Column: "schedule_c"},
		{Name: "room", Column: "room_c"},
		{Name: "capacity", Column: "capacity_c"},
	}
)

type Service struct {
	table *records.Table[Class]
}

func NewService(store records.Store, logger core.Logger) *Service {
	return &Service{
		table: &records.Table[Class]{
			Name:     TableName,
			Fields:   Fields,
			NotFound: ErrNotFound,
			Store:    store,
			Logger:   logger,
		},
	}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.table.All(ctx)
}

// Query fetches all classes, then filters and orders them.
func (svc *Service) Query(ctx context.Context, filter QueryFilter, orderings []core.Ordering) ([]Class, error) {
	classes, err := svc.table.All(ctx)
	if err != nil {
		return nil, err
	}
	classes = Filter(classes, filter)
	Sort(classes, orderings)
	return classes, nil
}

// Subjects lists the subjects taught, in first-seen order.
func (svc *Service) Subjects(ctx context.Context) ([]string, error) {
	classes, err := svc.table.All(ctx)
	if err != nil {
		return nil, err
	}
	return Subjects(classes), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Class, error) {
	return svc.table.Get(ctx, id)
}

// Create returns nil when the record store rejected the record.
func (svc *Service) Create(ctx context.Context, p Payload) (*Class, error) {
	return svc.table.Create(ctx, p, p.Name)
}

// Update returns nil when the record store rejected the record.
func (svc *Service) Update(ctx context.Context, id int, p Payload) (*Class, error) {
	return svc.table.Update(ctx, id, p, p.Name)
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.table.Delete(ctx, id)
}
