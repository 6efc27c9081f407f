package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/repository/base"
)

// ServiceMappingRepository reads the doctor-clinic-service mapping table.
type ServiceMappingRepository struct {
	*base.Repository
}

func NewServiceMappingRepository(db base.DBTX) *ServiceMappingRepository {
	return &ServiceMappingRepository{Repository: base.NewRepository(db)}
}

// ListActive returns the active mappings of a doctor at a clinic for the given services.
func (r *ServiceMappingRepository) ListActive(ctx context.Context, doctorID, clinicID int64, serviceIDs []int64) ([]*model.DoctorClinicService, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, doctor_id, clinic_id, service_id, duration, status
		FROM doctor_clinic_services
		WHERE doctor_id = $1
		  AND clinic_id = $2
		  AND service_id = ANY($3)
		  AND status = 1
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, doctorID, clinicID, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("list doctor services: %w", err)
	}
	defer rows.Close()

	var mappings []*model.DoctorClinicService
	for rows.Next() {
		var m model.DoctorClinicService
		if err := rows.Scan(&m.ID, &m.DoctorID, &m.ClinicID, &m.ServiceID, &m.Duration, &m.Status); err != nil {
			return nil, fmt.Errorf("scan doctor service: %w", err)
		}
		mappings = append(mappings, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctor services: %w", err)
	}

	return mappings, nil
}
