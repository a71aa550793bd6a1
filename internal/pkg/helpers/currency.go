package helpers

import "strconv"

// FormatINR formats an amount of rupees with Indian digit grouping,
// e.g. 1234567 -> "₹12,34,567". Negative amounts keep the sign in front.
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	// Last group has three digits, every group before it has two
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var grouped string
	for len(head) > 2 {
		grouped = "," + head[len(head)-2:] + grouped
		head = head[:len(head)-2]
	}
	grouped = head + grouped

	return sign + "₹" + grouped + "," + tail
}
