package model

// PaymentMode is the channel a fee was paid through.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeCard         PaymentMode = "Card"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
)

// PaymentModes lists the accepted modes in display order.
var PaymentModes = []PaymentMode{
	PaymentModeCash,
	PaymentModeUPI,
	PaymentModeCard,
	PaymentModeBankTransfer,
}

// Valid reports whether m is one of the accepted payment modes.
func (m PaymentMode) Valid() bool {
	for _, known := range PaymentModes {
		if m == known {
			return true
		}
	}
	return false
}

// FeeStatusPaid is the status the server stamps on recorded payments.
const FeeStatusPaid = "PAID"

// DateLayout is the wire format of Fee.PaymentDate.
const DateLayout = "2006-01-02"

// Fee represents one payment made by a student.
type Fee struct {
	ID          int64       `json:"id,omitempty"`
	StudentID   int64       `json:"studentId" validate:"required"`
	Amount      float64     `json:"amount" validate:"gt=0"`
	PaymentDate string      `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	Mode        PaymentMode `json:"mode" validate:"required,payment_mode"`
	Status      string      `json:"status,omitempty"`
}

// TotalPaid is the aggregate returned by the per-student total endpoint.
type TotalPaid struct {
	TotalPaid float64 `json:"totalPaid"`
}
