package get_schedule_overview

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
)

// UseCase сводка расписания сотрудника
type UseCase struct {
	availability AvailabilityService
	timeOff      TimeOffService
	slots        SlotService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, timeOff TimeOffService, slots SlotService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeOff:      timeOff,
		slots:        slots,
		logger:       logger,
	}
}

// Execute загружает три части параллельно и сводит их в календарь по датам
// Ошибка графика или заявок возвращается целиком, слоты при сбое деградируют до пустого списка.
// Заявки загружаются только для самого сотрудника и менеджера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetScheduleOverview: employee=%d service=%d %s..%s by %s",
		req.EmployeeID, req.ServiceID, req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat), req.Actor)

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", domain.ErrInvalidInput)
	}

	resp := &Response{TimeOff: []domain.TimeOffRequest{}, Slots: []domain.DayGroup{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		week, err := uc.availability.Load(gctx, req.Actor, req.EmployeeID)
		if err != nil {
			return err
		}
		resp.Week = week
		return nil
	})

	if req.Actor.CanManageSchedule(req.EmployeeID) {
		g.Go(func() error {
			list, err := uc.timeOff.List(gctx, req.Actor, timeoff.ListFilter{EmployeeID: ptr.Ptr(req.EmployeeID)})
			if err != nil {
				return err
			}
			resp.TimeOff = list
			return nil
		})
	}

	g.Go(func() error {
		groups, err := uc.slots.Available(gctx, req.Actor, slots.Query{
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			DateFrom:   req.DateFrom,
			DateTo:     req.DateTo,
		})
		if err != nil {
			return err
		}
		resp.Slots = groups
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Warn("GetScheduleOverview: employee=%d failed: %v", req.EmployeeID, err)
		return nil, err
	}

	resp.Calendar = domain.BuildCalendar(resp.Week.Week, resp.TimeOff, resp.Slots, req.DateFrom, req.DateTo)
	return resp, nil
}
