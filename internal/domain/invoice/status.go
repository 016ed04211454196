package invoice

// Status is the payment status of an invoice.
type Status string

const (
	// StatusPending marks an invoice awaiting payment.
	StatusPending Status = "pending"
	// StatusPaid marks a settled invoice.
	StatusPaid Status = "paid"
)

// IsValid reports whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid:
		return true
	}
	return false
}
