package ds3231

// Temperature is a reading in quarter degrees Celsius, the resolution of the sensor.
type Temperature int16

// Celsius returns the temperature in degrees Celsius.
func (t Temperature) Celsius() float64 {
	return float64(t) / 4
}

// MilliCelsius returns the temperature in millidegrees Celsius, the unit used by most TinyGo sensor drivers.
func (t Temperature) MilliCelsius() int32 {
	return int32(t) * 250
}

// DecodeTemperature reads the temperature registers: a two's complement integer byte followed by a byte holding the
// fraction in its top two bits. Together they form a signed 10-bit count of quarter degrees.
func DecodeTemperature(buf []byte) (Temperature, error) {
	if len(buf) < tempLen {
		return 0, &FormatError{Register: Temp, Field: "temperature", Reason: "short read"}
	}
	return Temperature(int16(int8(buf[0]))<<2 | int16(buf[1]>>6)), nil
}
