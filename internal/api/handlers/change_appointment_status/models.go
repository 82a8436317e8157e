package change_appointment_status

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Action string `json:"action"` // confirm, start, complete, no_show, cancel
}
