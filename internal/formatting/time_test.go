package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTimeFormatter_FormatTime(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "02:30 PM", NewTimeFormatter("", nil).FormatTime(at))
	assert.Equal(t, "14:30", NewTimeFormatter("15:04", time.UTC).FormatTime(at))

	plus3 := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, "17:30", NewTimeFormatter("15:04", plus3).FormatTime(at))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 min", FormatDuration(30))
	assert.Equal(t, "2 h", FormatDuration(120))
	assert.Equal(t, "1 h 15 min", FormatDuration(75))
}

func TestFormatSessionRange(t *testing.T) {
	s := &model.DoctorSession{Day: "mon", StartTime: model.MustTimeOfDay("09:00"), EndTime: model.MustTimeOfDay("11:00")}
	assert.Equal(t, "mon 09:00-11:00", FormatSessionRange(s))
	assert.Equal(t, "10.03.2025", FormatDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
}
