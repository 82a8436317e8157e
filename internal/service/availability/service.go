package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

const opSaveSchedule = "save_schedule"

// Service сервис недельного графика сотрудника
// Ответ сервера всегда заменяет локальное состояние целиком
type Service struct {
	client    SalonClient
	snapshots SnapshotRepository
	locks     Locker
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса
// snapshots может быть nil, если хранилище снимков отключено
func NewService(
	client SalonClient,
	snapshots SnapshotRepository,
	locks Locker,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		client:    client,
		snapshots: snapshots,
		locks:     locks,
		metrics:   metrics,
		logger:    logger,
	}
}

// Load получает неделю сотрудника и сверяет её с последним снимком
func (s *Service) Load(ctx context.Context, actor domain.Actor, employeeID int64) (*WeekResult, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", domain.ErrInvalidInput)
	}

	week, violations, err := s.client.GetSchedule(ctx, actor, employeeID)
	if err != nil {
		s.logger.Error("Load: failed to get schedule for employee=%d: %v", employeeID, err)
		return nil, translate(err)
	}

	if len(violations) > 0 {
		s.logger.Warn("Load: schedule of employee=%d has %d violations: %v", employeeID, len(violations), violations)
	}

	changed := s.remember(ctx, week)

	return &WeekResult{Week: week, Violations: violations, ChangedSinceLastSeen: changed}, nil
}

// Save отправляет всю неделю целиком
// Локальные нарушения блокируют вызов salon API полностью и возвращаются все сразу.
// После любой ошибки сервера каноническая неделя перечитывается и возвращается вместе с ошибкой
// (nil, если перечитать не удалось): клиент заменяет ею свою копию.
func (s *Service) Save(ctx context.Context, actor domain.Actor, week *domain.WeeklyAvailability) (*WeekResult, error) {
	if !actor.CanManageSchedule(week.EmployeeID) {
		s.metrics.IncRejection(opSaveSchedule, domain.KindName(domain.ErrAccessDenied))
		s.logger.Warn("Save: %s may not edit schedule of employee=%d", actor, week.EmployeeID)
		return nil, fmt.Errorf("%w: %s may not edit schedule of employee %d", domain.ErrAccessDenied, actor, week.EmployeeID)
	}

	if violations := week.Validate(); len(violations) > 0 {
		for _, v := range violations {
			s.metrics.IncRejection(opSaveSchedule, domain.KindName(v.Kind))
		}
		s.logger.Warn("Save: schedule of employee=%d rejected locally: %v", week.EmployeeID, violations)
		return nil, violations
	}

	unlock, ok := s.locks.TryLock(lockKey(week.EmployeeID))
	if !ok {
		s.metrics.IncRejection(opSaveSchedule, domain.KindName(domain.ErrBusy))
		return nil, fmt.Errorf("%w: schedule of employee %d", domain.ErrBusy, week.EmployeeID)
	}
	defer unlock()

	saved, violations, err := s.client.ReplaceSchedule(ctx, actor, week)
	if err != nil {
		s.logger.Error("Save: failed to replace schedule for employee=%d: %v", week.EmployeeID, err)
		return s.refetch(ctx, actor, week.EmployeeID), translate(err)
	}

	if len(violations) > 0 {
		s.logger.Warn("Save: server returned schedule of employee=%d with violations: %v", week.EmployeeID, violations)
	}

	s.remember(ctx, saved)

	s.logger.Info("Save: schedule of employee=%d replaced by %s", week.EmployeeID, actor)
	return &WeekResult{Week: saved, Violations: violations}, nil
}

// refetch перечитывает каноническую неделю после неудачного сохранения
func (s *Service) refetch(ctx context.Context, actor domain.Actor, employeeID int64) *WeekResult {
	// исходный контекст мог уже истечь
	ctx = context.WithoutCancel(ctx)

	fresh, violations, err := s.client.GetSchedule(ctx, actor, employeeID)
	if err != nil {
		s.logger.Warn("Save: failed to re-fetch schedule for employee=%d: %v", employeeID, err)
		return nil
	}
	changed := s.remember(ctx, fresh)
	return &WeekResult{Week: fresh, Violations: violations, ChangedSinceLastSeen: changed}
}

// remember сохраняет снимок и сообщает, изменилась ли неделя с прошлого раза
func (s *Service) remember(ctx context.Context, week *domain.WeeklyAvailability) bool {
	if s.snapshots == nil {
		return false
	}

	changed := false
	prev, err := s.snapshots.Get(ctx, week.EmployeeID)
	switch {
	case err == nil:
		changed = !prev.Week.Equal(week)
	case errors.Is(err, snapshot.ErrSnapshotNotFound):
	default:
		s.logger.Warn("snapshot: failed to get employee=%d: %v", week.EmployeeID, err)
	}

	if err := s.snapshots.Save(ctx, week); err != nil {
		s.logger.Warn("snapshot: failed to save employee=%d: %v", week.EmployeeID, err)
	}
	return changed
}

func lockKey(employeeID int64) string {
	return fmt.Sprintf("schedule:%d", employeeID)
}

// translate приводит ошибки клиента к доменным
func translate(err error) error {
	if errors.Is(err, salonapi.ErrNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}
