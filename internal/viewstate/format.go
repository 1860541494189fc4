package viewstate

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/venky2135/pg-management-system/internal/model"
)

// FormatAmount renders an amount in rupees with Indian digit grouping,
// e.g. 150000 → "₹1,50,000.00".
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	digits := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	whole, frac, _ := strings.Cut(digits, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// groupIndian puts a comma before the last three digits and then after
// every two digits further left.
func groupIndian(whole string) string {
	if len(whole) <= 3 {
		return whole
	}
	head, tail := whole[:len(whole)-3], whole[len(whole)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// FormatDate renders an ISO payment date as "17 Oct 2026".
// Unparseable input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("2 Jan 2006")
}
