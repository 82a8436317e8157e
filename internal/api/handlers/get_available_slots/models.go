package get_available_slots

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	EmployeeID int64                       `json:"employeeId"`
	ServiceID  int64                       `json:"serviceId,omitempty"`
	Days       []handlers.DayGroupResponse `json:"days"`
}

// ToServiceQuery разбирает query параметры
func ToServiceQuery(employeeID int64, query url.Values) (slots.Query, error) {
	q := slots.Query{EmployeeID: employeeID}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, err
		}
		q.ServiceID = serviceID
	}

	dateFrom, err := handlers.ParseDate(query.Get("dateFrom"))
	if err != nil {
		return q, err
	}
	dateTo, err := handlers.ParseDate(query.Get("dateTo"))
	if err != nil {
		return q, err
	}
	q.DateFrom, q.DateTo = dateFrom, dateTo

	if raw := query.Get("ignoreTimeOff"); raw != "" {
		ignore, err := strconv.ParseBool(raw)
		if err != nil {
			return q, err
		}
		q.IgnoreTimeOff = ignore
	}

	return q, nil
}
