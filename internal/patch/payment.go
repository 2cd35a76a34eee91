package patch

import "consultorio-server/internal/models"

// PaymentPatch holds the payment attributes a client may change.
type PaymentPatch struct {
	Status            Field[models.PaymentStatus] `json:"estado"`
	TransactionNumber Field[string]               `json:"numeroTransaccion"`
	ReceiptNumber     Field[string]               `json:"numeroComprobante"`
	Observations      Field[string]               `json:"observaciones"`
}

// Apply merges p onto pay.
func (p *PaymentPatch) Apply(pay *models.Payment) Result {
	var r Result
	assign(&r, "estado", p.Status, func(v models.PaymentStatus) { pay.Status = v })
	assign(&r, "numeroTransaccion", p.TransactionNumber, func(v string) { pay.TransactionNumber = v })
	assign(&r, "numeroComprobante", p.ReceiptNumber, func(v string) { pay.ReceiptNumber = v })
	assign(&r, "observaciones", p.Observations, func(v string) { pay.Observations = v })
	return r
}
