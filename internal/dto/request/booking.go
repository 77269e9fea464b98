package request

type CreateBookingRequest struct {
	Service      string  `json:"service" validate:"required"`
	Price        string  `json:"price" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	Vehicle      string  `json:"vehicle" validate:"required"`
	VehicleModel string  `json:"vehicleModel" validate:"required"`
	Preferences  *string `json:"preferences,omitempty" validate:"omitempty,max=500"`
}

type BookingStatusRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid4"`
	Status    string `json:"status" validate:"required"`
}

type AssignTaskRequest struct {
	BookingID  string `json:"bookingId" validate:"required,uuid4"`
	EmployeeID string `json:"employeeId" validate:"required,uuid4"`
}

type CompleteTaskRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid4"`
}

type MarkReadRequest struct {
	NotificationID string `json:"notificationId" validate:"required,uuid4"`
}
