package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const table = "weekly_availability_snapshots"

// storageFormat формат хранения не зависит от формата salon API
var storageFormat = domain.WireFormat{Keys: domain.WeekdayKeysShort}

// Snapshot последняя авторитетная неделя, полученная от salon API
type Snapshot struct {
	EmployeeID int64
	Week       *domain.WeeklyAvailability
	UpdatedAt  time.Time
}

// Repository репозиторий снимков недельного графика
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория снимков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает снимок недели сотрудника
func (r *Repository) Get(ctx context.Context, employeeID int64) (*Snapshot, error) {
	query, args, err := buildGetQuery(employeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		payload   []byte
		updatedAt time.Time
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan: %v", ErrScanRow, err)
	}

	week, err := decodePayload(employeeID, payload)
	if err != nil {
		return nil, err
	}

	return &Snapshot{EmployeeID: employeeID, Week: week, UpdatedAt: updatedAt}, nil
}

// Save сохраняет неделю, перезаписывая предыдущий снимок
func (r *Repository) Save(ctx context.Context, week *domain.WeeklyAvailability) error {
	query, args, err := buildUpsertQuery(week)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

func buildGetQuery(employeeID int64) (string, []interface{}, error) {
	return psqlbuilder.Select("payload", "updated_at").
		From(table).
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
}

func buildUpsertQuery(week *domain.WeeklyAvailability) (string, []interface{}, error) {
	payload, err := json.Marshal(week.ToWire(storageFormat))
	if err != nil {
		return "", nil, fmt.Errorf("%w: Save - encode week: %v", ErrPayload, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("employee_id", "payload", "updated_at").
		Values(week.EmployeeID, payload, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (employee_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

// decodePayload снимок хранит то, что прислал сервер, поэтому нарушения здесь не ошибка
func decodePayload(employeeID int64, payload []byte) (*domain.WeeklyAvailability, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	week, _ := domain.FromWire(employeeID, raw)
	return week, nil
}
