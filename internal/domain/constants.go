package domain

// Default scheduling configuration values
const (
	DefaultBufferMinutes        = 0
	DefaultMaxDateRangeDays     = 365 // 1 year
	DefaultMinPeriodMinutes     = 5
	DefaultMaxPeriodMinutes     = 480 // 8 hours
	DefaultMaxPeriodsPerBooking = 20
	DefaultHorizonDays          = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480
	MaxNameLength          = 200
	MaxDescriptionLength   = 1000
)

// MaxSlotIterations потолок количества итераций генерации слотов на день:
// один тик на минуту в сутках. Ограничивает цикл при любых патологических входах.
const MaxSlotIterations = 24 * 60

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
