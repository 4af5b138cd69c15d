// Package service defines capability interfaces consumed by the usecase layer
// and implemented under internal/infra.
package service

import "context"

// MessageChannel is the out-of-band text-messaging capability. It knows
// nothing about domain data: it accepts a phone number and a fully rendered
// message. No delivery receipts are modeled; the system only learns whether
// the message was accepted for send.
type MessageChannel interface {
	// Send hands one message to the external channel. Implementations must
	// honor ctx cancellation so a provider outage cannot stall the caller.
	Send(ctx context.Context, phoneNumber, text string) error
}
