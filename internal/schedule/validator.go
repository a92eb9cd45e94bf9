package schedule

import (
	"time"

	"inmovisitas/internal/utils"
)

// Policy bounds how far in the future a visit window may start: the
// earliest allowed start day is today+MinOffsetDays, the latest is
// today+MaxOffsetDays. Both boundary days are themselves allowed.
type Policy struct {
	MinOffsetDays int
	MaxOffsetDays int
}

// Validator checks candidate visit windows against a Policy. All
// comparisons use naive local calendar dates and times of day; no
// timezone conversion happens anywhere here.
type Validator struct {
	policy Policy
	clock  Clock
}

func NewValidator(policy Policy, clock Clock) *Validator {
	if clock == nil {
		clock = SystemClock()
	}
	return &Validator{policy: policy, clock: clock}
}

func (v *Validator) Policy() Policy { return v.policy }

// ValidateMinDate rejects dates earlier than today+MinOffsetDays. The
// threshold is truncated to midnight so the current time of day cannot
// push the boundary into the next day. Empty input is not judged here;
// required-ness is a separate concern.
func (v *Validator) ValidateMinDate(dateStr string) ErrorCode {
	if dateStr == "" {
		return CodeNone
	}
	d, err := time.ParseInLocation(utils.DateLayout, dateStr, time.Local)
	if err != nil {
		return CodeInvalid
	}
	threshold := utils.StartOfDay(v.clock.Now()).AddDate(0, 0, v.policy.MinOffsetDays)
	if d.Before(threshold) {
		return CodeMinDate
	}
	return CodeNone
}

// ValidateMaxDate rejects dates later than today+MaxOffsetDays. The
// threshold sits at the end of its day so the boundary day itself passes.
func (v *Validator) ValidateMaxDate(dateStr string) ErrorCode {
	if dateStr == "" {
		return CodeNone
	}
	d, err := time.ParseInLocation(utils.DateLayout, dateStr, time.Local)
	if err != nil {
		return CodeInvalid
	}
	threshold := utils.EndOfDay(v.clock.Now().AddDate(0, 0, v.policy.MaxOffsetDays))
	if d.After(threshold) {
		return CodeMaxDate
	}
	return CodeNone
}

// ValidateRange requires the combined end instant to be strictly after
// the combined start instant; equal instants are rejected. Windows may
// span several days. While any of the four fields is still empty the
// range is not judged yet.
func (v *Validator) ValidateRange(startDate, startTime, endDate, endTime string) ErrorCode {
	if startDate == "" || startTime == "" || endDate == "" || endTime == "" {
		return CodeNone
	}
	start, err := utils.CombineDateTime(startDate, startTime)
	if err != nil {
		return CodeInvalid
	}
	end, err := utils.CombineDateTime(endDate, endTime)
	if err != nil {
		return CodeInvalid
	}
	if !end.After(start) {
		return CodeInvalidDateRange
	}
	return CodeNone
}
