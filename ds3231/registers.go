package ds3231

const (
	Address     = 0x68 // I2C address for DS3231
	Time        = 0x00 // Time registers starting with seconds
	Alarm1Time  = 0x07 // Alarm 1 registers starting with seconds
	Alarm2Time  = 0x0B // Alarm 2 registers starting with minutes
	Control     = 0x0E // Control register
	Status      = 0x0F // Control/status register
	AgingOffset = 0x10 // Aging offset register, not used by this driver
	Temp        = 0x11 // Temperature registers, MSB then LSB

	timeLen   = 7
	alarm1Len = 4
	alarm2Len = 3
	tempLen   = 2
)

// status register bits
const (
	statusOSF     = 7
	statusEN32kHz = 3
	statusBSY     = 2
	statusA2F     = 1
	statusA1F     = 0
)

// control register bits
const (
	controlEOSC  = 7
	controlBBSQW = 6
	controlCONV  = 5
	controlRS2   = 4
	controlRS1   = 3
	controlINTCN = 2
	controlA2IE  = 1
	controlA1IE  = 0
)

// time and alarm register bits
const (
	centuryBit  = 1 << 7 // month register
	hour12Bit   = 1 << 6 // hour registers: 12-hour mode
	hourPMBit   = 1 << 5 // hour registers in 12-hour mode
	alarmMaskB  = 1 << 7 // AxMy bit, set means the field is ignored
	alarmDayBit = 1 << 6 // DY/DT, set means day of week
)

const (
	DefaultBus     = "i2c-1"
	DefaultCentury = 2000
)
