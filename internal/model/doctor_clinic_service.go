package model

// DoctorClinicService maps a service to a doctor at a clinic with its own duration.
type DoctorClinicService struct {
	ID        int64 `json:"id"`
	DoctorID  int64 `json:"doctor_id"`
	ClinicID  int64 `json:"clinic_id"`
	ServiceID int64 `json:"service_id"`
	Duration  int   `json:"duration"` // minutes
	Status    int   `json:"status"`
}

// ServiceStatusActive marks a mapping that can be booked.
const ServiceStatusActive = 1
