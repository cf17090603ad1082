package calendar

import (
	"time"

	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeSeasonalBlackout
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeSeasonalBlackout:
		return "seasonal_blackout"
	default:
		return "unknown"
	}
}

// Describe returns a human readable label for the day type
func (t DayType) Describe() string {
	switch t {
	case DayTypeWorkday:
		return "working day"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "public holiday"
	case DayTypeSeasonalBlackout:
		return "Christmas/New Year period (20 Dec - 10 Jan)"
	default:
		return "unknown"
	}
}

func (t DayType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date      dateutil.Date `json:"date"`
	Type      DayType       `json:"type"`
	IsWorkday bool          `json:"is_workday"`
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	WorkDays  int        `json:"work_days"`
	Weekends  int        `json:"weekends"`
	Holidays  int        `json:"holidays"`
	Blackouts int        `json:"blackout_days"`
	Days      []DayInfo  `json:"days"`
}

// Calendar interface for checking working days
type Calendar interface {
	// Classify returns the rule that makes the date working or non-working
	Classify(date dateutil.Date) DayType

	// IsWorkingDay checks if the given date is a working day
	IsWorkingDay(date dateutil.Date) bool
}

// GetDayInfo returns detailed info for a specific day
func GetDayInfo(cal Calendar, date dateutil.Date) DayInfo {
	dayType := cal.Classify(date)
	return DayInfo{
		Date:      date,
		Type:      dayType,
		IsWorkday: dayType == DayTypeWorkday,
	}
}

// GetMonthInfo returns calendar info for the entire month
func GetMonthInfo(cal Calendar, year int, month time.Month) MonthInfo {
	info := MonthInfo{
		Year:  year,
		Month: month,
	}

	first := dateutil.NewDate(year, month, 1)
	for d := first; d.Month() == month; d = d.AddDays(1) {
		day := GetDayInfo(cal, d)
		info.Days = append(info.Days, day)

		switch day.Type {
		case DayTypeWorkday:
			info.WorkDays++
		case DayTypeWeekend:
			info.Weekends++
		case DayTypeHoliday:
			info.Holidays++
		case DayTypeSeasonalBlackout:
			info.Blackouts++
		}
	}

	return info
}
