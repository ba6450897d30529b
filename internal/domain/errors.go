package domain

import "errors"

var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrTicketAlreadyRedeemed = errors.New("ticket already redeemed")
	ErrPaymentNotCompleted   = errors.New("payment not completed")
	ErrSessionRefRequired    = errors.New("session reference required")
	ErrTicketIDRequired      = errors.New("ticket id required")
	ErrActorRequired         = errors.New("actor required")
)
