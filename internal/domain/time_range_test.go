package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

func tr(start, end string) TimeRange {
	return TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestTimeRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       TimeRange
		wantErr error
	}{
		{name: "valid", r: tr("09:00", "17:00")},
		{name: "one minute", r: tr("09:00", "09:01")},
		{name: "equal bounds", r: tr("10:00", "10:00"), wantErr: ErrOrder},
		{name: "reversed", r: tr("18:00", "09:00"), wantErr: ErrOrder},
		{name: "bad start", r: tr("9:00", "17:00"), wantErr: ErrFormat},
		{name: "bad end", r: tr("09:00", "25:00"), wantErr: ErrFormat},
		{name: "empty", r: tr("", ""), wantErr: ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTimeRange_ValidateExhaustiveOrder(t *testing.T) {
	// every well-formed pair on a 30-minute grid
	for s := 0; s < 24*60; s += 30 {
		for e := 0; e < 24*60; e += 30 {
			start := types.TimeString(fmt.Sprintf("%02d:%02d", s/60, s%60))
			end := types.TimeString(fmt.Sprintf("%02d:%02d", e/60, e%60))
			err := NewTimeRange(start, end).Validate()
			if s < e {
				assert.NoError(t, err, fmt.Sprintf("%s-%s", start, end))
			} else {
				assert.ErrorIs(t, err, ErrOrder, fmt.Sprintf("%s-%s", start, end))
			}
		}
	}
}

func TestTimeRange_ConflictsWith(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{name: "overlap", a: tr("09:00", "12:00"), b: tr("11:00", "13:00"), want: true},
		{name: "duplicate", a: tr("09:00", "12:00"), b: tr("09:00", "12:00"), want: true},
		{name: "contained", a: tr("09:00", "18:00"), b: tr("12:00", "13:00"), want: true},
		{name: "one shared minute", a: tr("09:00", "10:01"), b: tr("10:00", "11:00"), want: true},
		{name: "shared boundary", a: tr("09:00", "10:00"), b: tr("10:00", "11:00"), want: false},
		{name: "disjoint", a: tr("09:00", "10:00"), b: tr("14:00", "15:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ConflictsWith(tt.b))
			assert.Equal(t, tt.want, tt.b.ConflictsWith(tt.a), "conflict must be symmetric")
		})
	}
}
