package shared

// DateRange bounds a query on ISO (YYYY-MM-DD) date columns.
// Empty bounds are open.
type DateRange struct {
	From string
	To   string
}
