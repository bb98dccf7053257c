package schedule

// GenerateSlots lists every SlotStep label from start up to, not including, end.
func GenerateSlots(h Hours) []string {
	if h.EndMinutes <= h.StartMinutes {
		return []string{}
	}
	labels := make([]string, 0, (h.EndMinutes-h.StartMinutes+SlotStep-1)/SlotStep)
	for m := h.StartMinutes; m < h.EndMinutes; m += SlotStep {
		labels = append(labels, FormatClock(m))
	}
	return labels
}
