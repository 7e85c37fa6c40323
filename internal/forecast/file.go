package forecast

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadDays decodes a JSON array of days.
func ReadDays(r io.Reader) ([]DayItem, error) {
	var days []DayItem
	if err := json.NewDecoder(r).Decode(&days); err != nil {
		return nil, fmt.Errorf("failed to decode forecast days: %w", err)
	}
	return days, nil
}

// LoadDays reads a JSON array of days from path.
func LoadDays(path string) ([]DayItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDays(f)
}
