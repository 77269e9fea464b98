package request

type EmployeeApplyRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	CNIC         string `json:"cnic" validate:"required,len=13,numeric"`
	ReferralCode string `json:"referralCode" validate:"required"`
}

type EmployeeLoginRequest struct {
	Name         string `json:"name" validate:"required"`
	ReferralCode string `json:"referralCode" validate:"required"`
}

// DecideApplicationRequest keeps the employeeId key used by existing clients
type DecideApplicationRequest struct {
	ApplicationID string `json:"employeeId" validate:"required,uuid4"`
	Action        string `json:"action" validate:"required"`
}

type UpdateEmployeeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	CNIC string `json:"cnic" validate:"required,len=13,numeric"`
}
