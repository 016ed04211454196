package invoice

import (
	"time"

	dominv "github.com/kailas-cloud/searchdeck/internal/domain/invoice"
)

// invoiceDTO is the stored JSON shape, decoupled from the domain type.
type invoiceDTO struct {
	ID          string    `json:"id"`
	Customer    string    `json:"customer"`
	Email       string    `json:"email,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

func toDTO(inv dominv.Invoice) invoiceDTO {
	return invoiceDTO{
		ID:          inv.ID(),
		Customer:    inv.Customer(),
		Email:       inv.Email(),
		AmountCents: inv.AmountCents(),
		Status:      string(inv.Status()),
		Date:        inv.Date(),
	}
}

func (d invoiceDTO) toDomain() dominv.Invoice {
	return dominv.Reconstruct(d.ID, d.Customer, d.Email, d.AmountCents, dominv.Status(d.Status), d.Date)
}
