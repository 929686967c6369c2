package utils

import (
	"strings"
	"time"
)

// O banco guarda datas como texto YYYY-MM-DD e timestamps como
// "YYYY-MM-DD HH:MM:SS", sempre no fuso local do servidor.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
}

func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, strings.TrimSpace(s), time.Local)
}

func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}
