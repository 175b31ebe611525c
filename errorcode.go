package pagos

// ErrorCode is the closed, provider-agnostic failure classification. Each
// driver translates its native codes into exactly one ErrorCode through a
// static lookup table; unmapped codes fall into the driver's default bucket.
// The zero value means "no error".
type ErrorCode string

const (
	ErrCodeConfig            ErrorCode = "config_error"
	ErrCodeProcessing        ErrorCode = "processing_error"
	ErrCodeUnsupported       ErrorCode = "unsupported"
	ErrCodeInvalidAmount     ErrorCode = "invalid_amount"
	ErrCodeIncorrectNumber   ErrorCode = "incorrect_number"
	ErrCodeInvalidCVC        ErrorCode = "invalid_cvc"
	ErrCodeIncorrectCVC      ErrorCode = "incorrect_cvc"
	ErrCodeExpiredCard       ErrorCode = "expired_card"
	ErrCodeCardDeclined      ErrorCode = "card_declined"
	ErrCodeInsufficientFunds ErrorCode = "insufficient_funds"
	ErrCodeSuspectedFraud    ErrorCode = "suspected_fraud"
	ErrCodeIncorrectAddress  ErrorCode = "incorrect_address"
	ErrCodeIncorrectZip      ErrorCode = "incorrect_zip"
	ErrCodeIncorrectPIN      ErrorCode = "incorrect_pin"
	ErrCodeInvalidExpiryDate ErrorCode = "invalid_expiry_date"
	ErrCodeCallIssuer        ErrorCode = "call_issuer"
	ErrCodePickUpCard        ErrorCode = "pick_up_card"
	ErrCodeInvalidState      ErrorCode = "invalid_state"
)

var validErrorCodes = map[ErrorCode]struct{}{
	ErrCodeConfig:            {},
	ErrCodeProcessing:        {},
	ErrCodeUnsupported:       {},
	ErrCodeInvalidAmount:     {},
	ErrCodeIncorrectNumber:   {},
	ErrCodeInvalidCVC:        {},
	ErrCodeIncorrectCVC:      {},
	ErrCodeExpiredCard:       {},
	ErrCodeCardDeclined:      {},
	ErrCodeInsufficientFunds: {},
	ErrCodeSuspectedFraud:    {},
	ErrCodeIncorrectAddress:  {},
	ErrCodeIncorrectZip:      {},
	ErrCodeIncorrectPIN:      {},
	ErrCodeInvalidExpiryDate: {},
	ErrCodeCallIssuer:        {},
	ErrCodePickUpCard:        {},
	ErrCodeInvalidState:      {},
}

// NewErrorCode validates a raw provider string against the closed set.
func NewErrorCode(value string) (ErrorCode, error) {
	c := ErrorCode(value)
	if _, ok := validErrorCodes[c]; !ok {
		return "", &ValidationError{Msg: "invalid error code provided"}
	}
	return c, nil
}

func (c ErrorCode) String() string {
	return string(c)
}
