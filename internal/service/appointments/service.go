package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

const (
	opCreate     = "create_appointment"
	opTransition = "transition_appointment"
	opCancel     = "cancel_appointment"
)

// Service сервис жизненного цикла записей
// Переход проверяется по свежей копии записи, после мутации возвращается ответ сервера.
// При сбое salon API мутации возвращают вместе с ошибкой перечитанную запись (nil, если
// перечитать не удалось): сервер мог применить изменение, даже если ответ потерян.
type Service struct {
	client       SalonClient
	locks        Locker
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	client SalonClient,
	locks Locker,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		client:       client,
		locks:        locks,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// LockKey ключ блокировки записи, общий для всех мутаций записи
func LockKey(id int64) string {
	return fmt.Sprintf("appointment:%d", id)
}

// List возвращает записи в заданном срезе; all доступен только менеджеру
func (s *Service) List(ctx context.Context, actor domain.Actor, scope domain.AppointmentScope) ([]domain.Appointment, error) {
	if scope == domain.ScopeAll && !actor.IsManager() {
		return nil, fmt.Errorf("%w: scope %q is for managers", domain.ErrAccessDenied, scope)
	}

	list, err := s.client.ListAppointments(ctx, actor, scope)
	if err != nil {
		s.logger.Error("List: failed to list appointments scope=%s for %s: %v", scope, actor, err)
		return nil, translate(err)
	}

	visible := make([]domain.Appointment, 0, len(list))
	for _, appt := range list {
		if appt.CanBeSeenBy(actor) {
			visible = append(visible, appt)
		}
	}
	if dropped := len(list) - len(visible); dropped > 0 {
		s.logger.Warn("List: dropped %d appointments not visible to %s", dropped, actor)
	}
	return visible, nil
}

// Get возвращает запись, если она видна пользователю
func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appt, err := s.client.GetAppointment(ctx, actor, id)
	if err != nil {
		s.logger.Error("Get: failed to get appointment id=%d: %v", id, err)
		return nil, translate(err)
	}
	if !appt.CanBeSeenBy(actor) {
		return nil, fmt.Errorf("%w: %s may not see appointment %d", domain.ErrAccessDenied, actor, id)
	}
	return appt, nil
}

// Create создает запись в статусе pending
func (s *Service) Create(ctx context.Context, actor domain.Actor, input domain.NewAppointment) (*domain.Appointment, error) {
	if err := input.Validate(actor, s.timeProvider.Now()); err != nil {
		return nil, s.reject(opCreate, err)
	}

	created, err := s.client.CreateAppointment(ctx, actor, input)
	if err != nil {
		s.logger.Error("Create: failed to create appointment for employee=%d client=%d: %v", input.EmployeeID, input.ClientID, err)
		return s.findCreated(ctx, actor, input, err), translate(err)
	}

	s.logger.Info("Create: appointment id=%d created by %s, status=%s", created.ID, actor, created.Status)
	return created, nil
}

// Transition применяет действие к записи
// Если целевой статус уже установлен, возвращает текущую запись без обращения к salon API
func (s *Service) Transition(ctx context.Context, actor domain.Actor, id int64, action domain.AppointmentAction) (*domain.Appointment, error) {
	if action == domain.ActionCancel {
		return s.Cancel(ctx, actor, id, nil)
	}

	unlock, err := s.lock(opTransition, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	target, noop, err := current.CheckTransition(actor, action)
	if err != nil {
		return nil, s.reject(opTransition, err)
	}
	if noop {
		s.logger.Info("Transition: appointment id=%d already %s, nothing to do", id, target)
		return current, nil
	}

	updated, err := s.client.UpdateAppointmentStatus(ctx, actor, id, target)
	if err != nil {
		s.logger.Error("Transition: failed to %s appointment id=%d: %v", action, id, err)
		return s.refetch(ctx, actor, id, err), translate(err)
	}

	s.metrics.IncTransition(string(current.Status), string(updated.Status), string(actor.Role))
	s.logger.Info("Transition: appointment id=%d %s -> %s by %s", id, current.Status, updated.Status, actor)
	return updated, nil
}

// Cancel отменяет запись с указанием причины
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64, reason *string) (*domain.Appointment, error) {
	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return nil, s.reject(opCancel, fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidInput, domain.MaxCancellationReasonLength))
	}

	unlock, err := s.lock(opCancel, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if _, _, err := current.CheckTransition(actor, domain.ActionCancel); err != nil {
		return nil, s.reject(opCancel, err)
	}

	updated, err := s.client.CancelAppointment(ctx, actor, id, reason)
	if err != nil {
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", id, err)
		return s.refetch(ctx, actor, id, err), translate(err)
	}

	s.metrics.IncTransition(string(current.Status), string(updated.Status), string(actor.Role))
	s.logger.Info("Cancel: appointment id=%d cancelled by %s", id, actor)
	return updated, nil
}

// refetch перечитывает запись после отказа salon API
// Только для *domain.RemoteError: на 404 и локальные ошибки перечитывать нечего.
func (s *Service) refetch(ctx context.Context, actor domain.Actor, id int64, cause error) *domain.Appointment {
	var remote *domain.RemoteError
	if !errors.As(cause, &remote) {
		return nil
	}

	// исходный контекст мог уже истечь
	appt, err := s.client.GetAppointment(context.WithoutCancel(ctx), actor, id)
	if err != nil {
		s.logger.Warn("failed to re-fetch appointment id=%d: %v", id, err)
		return nil
	}
	return appt
}

// findCreated ищет запись, которую сервер мог создать, хотя ответ на создание не дошел
// Совпадение: тот же сотрудник, клиент и время начала среди активных записей.
func (s *Service) findCreated(ctx context.Context, actor domain.Actor, input domain.NewAppointment, cause error) *domain.Appointment {
	var remote *domain.RemoteError
	if !errors.As(cause, &remote) {
		return nil
	}

	list, err := s.client.ListAppointments(context.WithoutCancel(ctx), actor, domain.ScopeUpcoming)
	if err != nil {
		s.logger.Warn("Create: failed to re-fetch upcoming appointments: %v", err)
		return nil
	}
	for i := range list {
		appt := &list[i]
		if appt.EmployeeID == input.EmployeeID && appt.ClientID == input.ClientID &&
			appt.Start.Equal(input.Start) && !appt.Status.IsTerminal() {
			s.logger.Info("Create: appointment id=%d exists despite the failure", appt.ID)
			return appt
		}
	}
	return nil
}

func (s *Service) lock(operation string, id int64) (func(), error) {
	unlock, ok := s.locks.TryLock(LockKey(id))
	if !ok {
		return nil, s.reject(operation, fmt.Errorf("%w: appointment %d", domain.ErrBusy, id))
	}
	return unlock, nil
}

func (s *Service) reject(operation string, err error) error {
	s.metrics.IncRejection(operation, domain.KindName(err))
	s.logger.Warn("%s: rejected locally: %v", operation, err)
	return err
}

func translate(err error) error {
	if errors.Is(err, salonapi.ErrNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}
