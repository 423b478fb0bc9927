package model

import "wallpaper-unlock/internal/domain"

// Method identifiers form a closed set; the registry only ever serves these.
const (
	MethodJazzCash  = "jazzcash"
	MethodEasypaisa = "easypaisa"
)

// PaymentMethod is a mobile-money channel with a fixed receiving account.
// The user transfers manually to the account and uploads the receipt.
type PaymentMethod struct {
	ID            string
	Name          string // display name, e.g. "JazzCash"
	AccountName   string // receiving account holder
	AccountNumber string
}

func (m *PaymentMethod) IsZero() bool { return m == nil || m.ID == "" }

// NewPaymentMethod validates and constructs a method record.
func NewPaymentMethod(id, name, accountName, accountNumber string) (*PaymentMethod, error) {
	if id == "" || name == "" || accountNumber == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &PaymentMethod{
		ID:            id,
		Name:          name,
		AccountName:   accountName,
		AccountNumber: accountNumber,
	}, nil
}
