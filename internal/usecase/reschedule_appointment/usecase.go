package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments"
)

const operation = "reschedule_appointment"

// UseCase use case для переноса записи на другое время
type UseCase struct {
	client       SalonClient
	locks        Locker
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client SalonClient, locks Locker, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		locks:        locks,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит запись
// Слот, выбранный пользователем раньше, перепроверяется по свежему списку слотов на дату newStart.
// При сбое переноса в salon API вместе с ошибкой возвращается перечитанная запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d to %s by %s",
		req.AppointmentID, req.NewStart.Format("2006-01-02T15:04"), req.Actor)

	// 1. Блокируем запись на время переноса
	unlock, ok := uc.locks.TryLock(appointments.LockKey(req.AppointmentID))
	if !ok {
		return nil, uc.reject(fmt.Errorf("%w: appointment %d", domain.ErrBusy, req.AppointmentID))
	}
	defer unlock()

	// 2. Получаем свежую копию записи
	appt, err := uc.client.GetAppointment(ctx, req.Actor, req.AppointmentID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, translate(err)
	}
	if !appt.CanBeSeenBy(req.Actor) {
		return nil, uc.reject(fmt.Errorf("%w: %s may not see appointment %d", domain.ErrAccessDenied, req.Actor, appt.ID))
	}

	// 3. Статус и время
	if err := appt.CheckReschedule(req.Actor, req.NewStart, uc.timeProvider.Now()); err != nil {
		return nil, uc.reject(err)
	}

	// 4. Свежие слоты на дату нового начала
	slots, err := uc.client.GetSlots(ctx, req.Actor, salonapi.SlotQuery{
		EmployeeID: appt.EmployeeID,
		ServiceID:  appt.ServiceID,
		DateFrom:   req.NewStart,
		DateTo:     req.NewStart,
	})
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to re-check slots for appointment id=%d: %v", appt.ID, err)
		return nil, translate(err)
	}

	if !domain.ContainsStart(slots, req.NewStart) {
		return nil, uc.reject(fmt.Errorf("%w: %s is not offered for employee %d any more",
			domain.ErrStaleSlot, req.NewStart.Format("2006-01-02 15:04"), appt.EmployeeID))
	}

	// 5. Переносим, ответ сервера заменяет локальную копию
	updated, err := uc.client.RescheduleAppointment(ctx, req.Actor, appt.ID, req.NewStart)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
		return uc.refetch(ctx, req.Actor, appt.ID, err), translate(err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s", updated.ID, updated.Start.Format("2006-01-02T15:04"))
	return updated, nil
}

// refetch перечитывает запись после отказа salon API; nil, если перечитать не удалось
func (uc *UseCase) refetch(ctx context.Context, actor domain.Actor, id int64, cause error) *domain.Appointment {
	var remote *domain.RemoteError
	if !errors.As(cause, &remote) {
		return nil
	}

	appt, err := uc.client.GetAppointment(context.WithoutCancel(ctx), actor, id)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to re-fetch appointment id=%d: %v", id, err)
		return nil
	}
	return appt
}

func (uc *UseCase) reject(err error) error {
	uc.metrics.IncRejection(operation, domain.KindName(err))
	uc.logger.Warn("RescheduleAppointment: rejected: %v", err)
	return err
}

func translate(err error) error {
	if errors.Is(err, salonapi.ErrNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}
