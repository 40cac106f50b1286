package ledger

import "errors"

var (
	ErrMalformedAccountNumber = errors.New("account number must be 4 digits")
	ErrRowBothSides           = errors.New("preset row participates in both debit and credit")
	ErrUnbalancedPosting      = errors.New("posting lines do not balance")
	ErrEmptyPosting           = errors.New("posting produced no lines")
	ErrAmountNotPositive      = errors.New("gross amount must be positive")
	ErrUnknownPreset          = errors.New("preset not found")
	ErrUnknownSpecialRule     = errors.New("no rule registered for special type")
	ErrInvalidRuleInput       = errors.New("special rule input is missing or invalid")
	ErrZeroHeadcount          = errors.New("headcount must be greater than zero")
	ErrUnknownAccount         = errors.New("account not in chart of accounts")
	ErrOwnership              = errors.New("referenced resource belongs to another owner")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrContactNotFound        = errors.New("contact not found")
	ErrEmptyDescription       = errors.New("transaction description is required")
	ErrPersistence            = errors.New("storage failure")
)
