package entry

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is a single row of the time-tracking grid. All fields are free text;
// display code may truncate, the model never does.
type Entry struct {
	TaskNumber string `json:"task_number"`
	WorkCode   string `json:"work_code"`
	TimeLog    string `json:"time_entry"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// Field identifies one of the five entry fields in grid order.
type Field uint8

const (
	// TaskNumber is the ticket or task identifier.
	TaskNumber Field = iota
	// WorkCode is the billing or activity code.
	WorkCode
	// TimeLog is the free-text log; it may contain embedded line breaks.
	TimeLog
	// StartTime is the HH:MM (or HHMM) start of the task.
	StartTime
	// EndTime is the HH:MM (or HHMM) end of the task.
	EndTime
)

// Fields returns all fields in grid order.
func Fields() []Field {
	return []Field{TaskNumber, WorkCode, TimeLog, StartTime, EndTime}
}

// Title returns the display name used for column headers and messages.
func (f Field) Title() string {
	switch f {
	case TaskNumber:
		return "Task Number"
	case WorkCode:
		return "Work Code"
	case TimeLog:
		return "Time Log"
	case StartTime:
		return "Start Time"
	case EndTime:
		return "End Time"
	default:
		return "Unknown"
	}
}

// Get returns the value of the given field.
func (e Entry) Get(f Field) string {
	switch f {
	case TaskNumber:
		return e.TaskNumber
	case WorkCode:
		return e.WorkCode
	case TimeLog:
		return e.TimeLog
	case StartTime:
		return e.StartTime
	case EndTime:
		return e.EndTime
	default:
		return ""
	}
}

// Set replaces the value of the given field.
func (e *Entry) Set(f Field, value string) {
	switch f {
	case TaskNumber:
		e.TaskNumber = value
	case WorkCode:
		e.WorkCode = value
	case TimeLog:
		e.TimeLog = value
	case StartTime:
		e.StartTime = value
	case EndTime:
		e.EndTime = value
	}
}

// IsComplete reports whether every field holds text.
func (e Entry) IsComplete() bool {
	for _, f := range Fields() {
		if e.Get(f) == "" {
			return false
		}
	}
	return true
}

// IsEntirelyEmpty reports whether no field holds text.
func (e Entry) IsEntirelyEmpty() bool {
	for _, f := range Fields() {
		if e.Get(f) != "" {
			return false
		}
	}
	return true
}

// Duration derives the task duration from StartTime and EndTime, formatted as
// HH:MM. It reports false when either time fails to parse or the end precedes
// the start; a negative or fabricated duration is never returned.
func (e Entry) Duration() (string, bool) {
	start, ok := parseClock(e.StartTime)
	if !ok {
		return "", false
	}
	end, ok := parseClock(e.EndTime)
	if !ok {
		return "", false
	}
	if end < start {
		return "", false
	}
	minutes := end - start
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), true
}

// parseClock reads HH:MM or compact HHMM and returns minutes since midnight.
// Exactly four digits must remain after stripping colons; signs and other
// non-digit bytes are rejected outright.
func parseClock(value string) (int, bool) {
	digits := strings.ReplaceAll(value, ":", "")
	if len(digits) != 4 {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	hour, err := strconv.Atoi(digits[:2])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(digits[2:])
	if err != nil {
		return 0, false
	}
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
