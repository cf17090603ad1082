package deadline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/interval"
	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
)

// ApplicationType is the consent category that fixes the base timeframe
type ApplicationType int

const (
	ApplicationFastTrack ApplicationType = iota + 1
	ApplicationNonNotified
	ApplicationNotifiedNoHearing
	ApplicationNotifiedHearing
	ApplicationNotifiedHearingExtended
)

type applicationInfo struct {
	key      string
	label    string
	baseDays int
}

var applicationTypes = map[ApplicationType]applicationInfo{
	ApplicationFastTrack:               {"fast_track", "Fast-track application", 10},
	ApplicationNonNotified:             {"non_notified", "Non-notified application", 20},
	ApplicationNotifiedNoHearing:       {"notified_no_hearing", "Notified, no hearing", 60},
	ApplicationNotifiedHearing:         {"notified_hearing", "Notified, with hearing", 100},
	ApplicationNotifiedHearingExtended: {"notified_hearing_extended", "Notified, hearing with extended timeframe", 130},
}

// ApplicationTypes lists every application type in allowance order
func ApplicationTypes() []ApplicationType {
	return []ApplicationType{
		ApplicationFastTrack,
		ApplicationNonNotified,
		ApplicationNotifiedNoHearing,
		ApplicationNotifiedHearing,
		ApplicationNotifiedHearingExtended,
	}
}

// ParseApplicationType maps a key such as "non_notified" to its type
func ParseApplicationType(key string) (ApplicationType, error) {
	k := normalizeKey(key)
	for t, info := range applicationTypes {
		if info.key == k {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownApplicationType, key)
}

// Valid reports whether t is one of the declared types
func (t ApplicationType) Valid() bool {
	_, ok := applicationTypes[t]
	return ok
}

// BaseDays returns the statutory working-day allowance, 0 for an invalid type
func (t ApplicationType) BaseDays() int {
	return applicationTypes[t].baseDays
}

func (t ApplicationType) Label() string {
	if !t.Valid() {
		return "unknown"
	}
	return applicationTypes[t].label
}

func (t ApplicationType) String() string {
	if !t.Valid() {
		return ""
	}
	return applicationTypes[t].key
}

func (t ApplicationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ApplicationType) UnmarshalText(text []byte) error {
	parsed, err := ParseApplicationType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// HoldType is the statutory reason the processing clock was stopped
type HoldType int

const (
	HoldFurtherInformation HoldType = iota + 1
	HoldCommissionedReport
	HoldWrittenApprovals
	HoldDeferral
	HoldApplicantSuspension
	HoldHearingAdjournment
	HoldOther
)

var holdTypes = map[HoldType][2]string{
	HoldFurtherInformation:  {"further_information", "Further information request"},
	HoldCommissionedReport:  {"commissioned_report", "Commissioned report"},
	HoldWrittenApprovals:    {"written_approvals", "Awaiting affected persons' written approvals"},
	HoldDeferral:            {"deferral", "Deferral pending additional consents"},
	HoldApplicantSuspension: {"applicant_suspension", "Processing suspended at applicant's request"},
	HoldHearingAdjournment:  {"hearing_adjournment", "Hearing adjourned"},
	HoldOther:               {"other", "Other clock stop"},
}

// HoldTypes lists every hold type in declaration order
func HoldTypes() []HoldType {
	return []HoldType{
		HoldFurtherInformation,
		HoldCommissionedReport,
		HoldWrittenApprovals,
		HoldDeferral,
		HoldApplicantSuspension,
		HoldHearingAdjournment,
		HoldOther,
	}
}

// ParseHoldType maps a key such as "further_information" to its type
func ParseHoldType(key string) (HoldType, error) {
	k := normalizeKey(key)
	for t, info := range holdTypes {
		if info[0] == k {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHoldType, key)
}

func (t HoldType) Valid() bool {
	_, ok := holdTypes[t]
	return ok
}

func (t HoldType) Label() string {
	if !t.Valid() {
		return "unknown"
	}
	return holdTypes[t][1]
}

func (t HoldType) String() string {
	if !t.Valid() {
		return ""
	}
	return holdTypes[t][0]
}

func (t HoldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *HoldType) UnmarshalText(text []byte) error {
	parsed, err := ParseHoldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// HoldPeriod is a caller-supplied clock stop. Either bound may be unset,
// in which case the period is ignored until both are filled in.
type HoldPeriod struct {
	ID    string        `json:"id"`
	Type  HoldType      `json:"type"`
	Start dateutil.Date `json:"start"`
	End   dateutil.Date `json:"end"`
}

// Complete reports whether both bounds are set
func (h HoldPeriod) Complete() bool {
	return !h.Start.IsZero() && !h.End.IsZero()
}

// ParseHoldPeriod builds a hold from raw field values. Unparseable dates are
// left unset; an unknown type is an error. An empty id gets a generated one.
func ParseHoldPeriod(id, holdType, start, end string) (HoldPeriod, error) {
	t, err := ParseHoldType(holdType)
	if err != nil {
		return HoldPeriod{}, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	hold := HoldPeriod{ID: id, Type: t}
	if d, err := dateutil.ParseDate(start); err == nil {
		hold.Start = d
	}
	if d, err := dateutil.ParseDate(end); err == nil {
		hold.End = d
	}
	return hold, nil
}

// MaxExtensionDays bounds a single extension; larger values are treated as invalid
const MaxExtensionDays = 10000

// Extension grants extra working days. A nil, negative or implausibly large
// Days contributes nothing.
type Extension struct {
	ID   string `json:"id"`
	Days *int   `json:"days"`
}

// Value returns the number of days the extension contributes
func (e Extension) Value() int {
	if e.Days == nil || *e.Days < 0 || *e.Days > MaxExtensionDays {
		return 0
	}
	return *e.Days
}

// ParseExtension builds an extension from a raw field value; blank,
// non-numeric or out-of-range input leaves Days unset.
func ParseExtension(id, raw string) Extension {
	if id == "" {
		id = uuid.NewString()
	}
	ext := Extension{ID: id}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n <= MaxExtensionDays {
		ext.Days = &n
	}
	return ext
}

// Request carries the raw inputs of a calculation
type Request struct {
	Trigger    dateutil.Date
	Decision   dateutil.Date
	Holds      []HoldPeriod
	Extensions []Extension
	Type       ApplicationType
}

// Stats are calendar-day tallies over the elapsed range, for display
type Stats struct {
	CalendarDays int `json:"calendar_days"`
	WeekendDays  int `json:"weekend_days"`
	HolidayDays  int `json:"holiday_days"`
}

// HoldBreakdown is the audit row for one hold period after clamping
type HoldBreakdown struct {
	ID           string        `json:"id"`
	Type         HoldType      `json:"type"`
	Start        dateutil.Date `json:"start"`
	End          dateutil.Date `json:"end"`
	ClampedStart dateutil.Date `json:"clamped_start"`
	ClampedEnd   dateutil.Date `json:"clamped_end"`
	Truncated    bool          `json:"truncated"`
	WorkingDays  int           `json:"working_days"`
}

// Result is the outcome of one calculation. It is built fresh each time and
// not modified afterwards.
type Result struct {
	Trigger         dateutil.Date   `json:"trigger"`
	Decision        dateutil.Date   `json:"decision"`
	ApplicationType ApplicationType `json:"application_type"`

	Day0         dateutil.Date    `json:"day0"`
	Day0Adjusted bool             `json:"day0_adjusted"`
	Day0Reason   calendar.DayType `json:"day0_reason,omitempty"`

	ElapsedWorkingDays int  `json:"elapsed_working_days"`
	RawHoldDays        int  `json:"raw_hold_days"`
	HoldDays           int  `json:"hold_days"`
	HoldClamped        bool `json:"hold_clamped"`

	ExtensionDays int  `json:"extension_days"`
	BaseDays      int  `json:"base_days"`
	MaxDays       int  `json:"max_days"`
	FinalDays     int  `json:"final_days"`
	IsOvertime    bool `json:"is_overtime"`
	DaysRemaining int  `json:"days_remaining"`
	DaysOver      int  `json:"days_over"`

	Stats       Stats               `json:"stats"`
	Holds       []HoldBreakdown     `json:"holds"`
	MergedHolds []interval.Interval `json:"merged_holds"`

	AllNonWorking bool     `json:"all_non_working"`
	Notes         []string `json:"notes,omitempty"`
}
