package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// templateRows is the sample upload document handed to users, showing the
// mandatory comment_text column and the optional metadata columns.
var templateRows = [][]string{
	{"comment_text", "timestamp", "author", "platform"},
	{"I love this product! Best purchase I've made all year.", "2024-01-01 10:00:00", "user_1", "instagram"},
	{"Terrible quality, broke after two days. Very disappointed.", "2024-01-01 11:30:00", "user_2", "tiktok"},
	{"It's okay, nothing special but it does the job.", "2024-01-01 12:15:00", "user_3", ""},
	{"Absolutely amazing, would recommend to everyone!", "2024-01-01 13:45:00", "user_4", "instagram"},
	{"Way too expensive for what you get.", "2024-01-01 14:20:00", "user_5", ""},
}

// WriteTemplate emits the canonical CSV upload template.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(templateRows); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
