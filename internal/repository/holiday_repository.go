package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/repository/base"
	"go.uber.org/zap"
)

// HolidayRepository reads doctor and clinic schedule overrides.
type HolidayRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewHolidayRepository(db base.DBTX, logger *zap.Logger) *HolidayRepository {
	return &HolidayRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

// ListActiveForDate returns active overrides of the doctor or the clinic that may cover
// date. Range rows are filtered in SQL; rows in multiple mode are returned for the
// caller to match against their date list.
func (r *HolidayRepository) ListActiveForDate(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]*model.Holiday, error) {
	query := `
		SELECT id, module_type, module_id, start_date, end_date, status,
		       selection_mode, selected_dates, time_specific,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM schedule_overrides
		WHERE status = true
		  AND ((module_type = 'doctor' AND module_id = $1)
		    OR (module_type = 'clinic' AND module_id = $2))
		  AND (selection_mode = 'multiple' OR (start_date <= $3 AND end_date >= $3))
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, doctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("list schedule overrides: %w", err)
	}
	defer rows.Close()

	var holidays []*model.Holiday
	for rows.Next() {
		var (
			h            model.Holiday
			startDate    time.Time
			endDate      time.Time
			mode         string
			selectedRaw  []byte
			timeSpecific bool
			startTime    *string
			endTime      *string
		)
		err := rows.Scan(
			&h.ID,
			&h.Module,
			&h.ModuleID,
			&startDate,
			&endDate,
			&h.Active,
			&mode,
			&selectedRaw,
			&timeSpecific,
			&startTime,
			&endTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule override: %w", err)
		}

		rule, err := decodeHolidayRule(mode, startDate, endDate, selectedRaw, timeSpecific, startTime, endTime)
		if err != nil {
			r.logger.Error("Malformed schedule override",
				zap.Int64("override_id", h.ID),
				zap.String("selection_mode", mode),
				zap.Error(err))
			return nil, fmt.Errorf("decode schedule override %d: %w", h.ID, err)
		}
		h.Rule = rule

		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule overrides: %w", err)
	}

	return holidays, nil
}

func decodeHolidayRule(
	mode string,
	startDate, endDate time.Time,
	selectedRaw []byte,
	timeSpecific bool,
	startTime, endTime *string,
) (model.HolidayRule, error) {
	var selected []time.Time
	if model.SelectionMode(mode) == model.SelectionModeMultiple && len(selectedRaw) > 0 {
		var raw []string
		if err := json.Unmarshal(selectedRaw, &raw); err != nil {
			return nil, fmt.Errorf("selected dates: %w", err)
		}
		for _, s := range raw {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return nil, fmt.Errorf("selected date %q: %w", s, err)
			}
			selected = append(selected, d)
		}
	}

	var start, end *model.TimeOfDay
	if timeSpecific {
		var err error
		if start, err = optionalTimeOfDay(startTime); err != nil {
			return nil, fmt.Errorf("start time: %w", err)
		}
		if end, err = optionalTimeOfDay(endTime); err != nil {
			return nil, fmt.Errorf("end time: %w", err)
		}
	}

	return model.NewHolidayRule(model.SelectionMode(mode), startDate, endDate, selected, timeSpecific, start, end)
}

func optionalTimeOfDay(s *string) (*model.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := model.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
