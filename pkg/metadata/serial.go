package metadata

import "fmt"

// SerialNumber is the system-generated identifier stamped on every asset,
// e.g. AST-2025-00042.
type SerialNumber struct {
	prefix   string
	year     int
	sequence int
}

const SerialPrefix string = "AST"

func NewSerialNumber(year int, sequence int) SerialNumber {
	var serial SerialNumber

	serial.prefix = SerialPrefix
	serial.year = year
	serial.sequence = sequence

	return serial
}

func (s *SerialNumber) String() string {
	return fmt.Sprintf("%s-%d-%05d", s.prefix, s.year, s.sequence)
}
