package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
)

type ServiceMappingLister interface {
	ListActive(ctx context.Context, doctorID, clinicID int64, serviceIDs []int64) ([]*model.DoctorClinicService, error)
}

// ServiceDurationResolver sums per doctor-clinic service durations.
type ServiceDurationResolver struct {
	mappings ServiceMappingLister
}

func NewServiceDurationResolver(mappings ServiceMappingLister) *ServiceDurationResolver {
	return &ServiceDurationResolver{mappings: mappings}
}

// GetServiceDurationSum returns the total minutes of serviceIDs for the doctor at the
// clinic. Ids without an active mapping add nothing; repeated ids count each time.
func (r *ServiceDurationResolver) GetServiceDurationSum(ctx context.Context, serviceIDs []int64, doctorID, clinicID int64) (int, error) {
	if len(serviceIDs) == 0 {
		return 0, nil
	}

	unique := make([]int64, 0, len(serviceIDs))
	seen := make(map[int64]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		if id <= 0 {
			return 0, invalidSlotRequest("field service_ids: invalid service id %d", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	mappings, err := r.mappings.ListActive(ctx, doctorID, clinicID, unique)
	if err != nil {
		return 0, fmt.Errorf("load service durations: %w", err)
	}

	durations := make(map[int64]int, len(mappings))
	for _, m := range mappings {
		if m.Status != model.ServiceStatusActive {
			continue
		}
		if _, ok := durations[m.ServiceID]; !ok {
			durations[m.ServiceID] = m.Duration
		}
	}

	total := 0
	for _, id := range serviceIDs {
		total += durations[id]
	}
	return total, nil
}
