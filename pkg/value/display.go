package value

// Display returns a compact rendering of v for error messages.
func Display(v Value) string {
	data, err := JSON(v)
	if err != nil {
		return "<unprintable>"
	}
	return string(data)
}
