package translator

// ApplyDeadZone returns 0 when |v| is below deadZone and v unchanged otherwise.
func ApplyDeadZone(v, deadZone float32) float32 {
	if abs(v) < deadZone {
		return 0
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func nonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
