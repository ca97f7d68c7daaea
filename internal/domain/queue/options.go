package queue

// ListOptions provides filtering options for listing entries.
// Results are always in creation order.
type ListOptions struct {
	Statuses []Status
	Owner    string
}

// Matches reports whether the entry passes the filter.
func (o ListOptions) Matches(e Entry) bool {
	if o.Owner != "" && e.Owner != o.Owner {
		return false
	}
	if len(o.Statuses) == 0 {
		return true
	}
	for _, s := range o.Statuses {
		if e.Status == s {
			return true
		}
	}
	return false
}
