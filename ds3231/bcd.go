package ds3231

// EncodeBCD packs v (0-99) into a byte with the tens digit in the high nibble and the ones digit in the low nibble.
func EncodeBCD(v int) (byte, error) {
	if v < 0 || v > 99 {
		return 0, &RangeError{Field: "bcd", Value: v, Min: 0, Max: 99}
	}
	return uint8(v + 6*(v/10)), nil
}

// DecodeBCD unpacks a BCD byte. Either nibble above 9 is a FormatError.
func DecodeBCD(b byte) (int, error) {
	if b>>4 > 9 || b&0x0F > 9 {
		return 0, &FormatError{Field: "bcd", Value: b, Reason: "invalid BCD digit"}
	}
	return int(b - 6*(b>>4)), nil
}

// encodeField range checks v against [lo, hi] before BCD packing it, so errors name the field.
func encodeField(field string, v, lo, hi int) (byte, error) {
	if v < lo || v > hi {
		return 0, &RangeError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return EncodeBCD(v)
}

// decodeField masks b, rejects any set bit outside mask, decodes BCD and range checks the result.
func decodeField(reg uint8, field string, b, mask byte, lo, hi int) (int, error) {
	if b&^mask != 0 {
		return 0, &FormatError{Register: reg, Field: field, Value: b, Reason: "reserved bits set"}
	}
	v, err := DecodeBCD(b)
	if err != nil {
		return 0, &FormatError{Register: reg, Field: field, Value: b, Reason: "invalid BCD digit"}
	}
	if v < lo || v > hi {
		return 0, &FormatError{Register: reg, Field: field, Value: b, Reason: "value out of range"}
	}
	return v, nil
}
