package ipcc

// Channel identifies one doorbell channel. The same six ids exist in each
// direction; the direction is implied by the operation.
type Channel uint8

// Channel ids.
const (
	Channel1 Channel = 1 + iota
	Channel2
	Channel3
	Channel4
	Channel5
	Channel6
)

// NumChannels is the number of channels per direction.
const NumChannels = 6

// Driver is the host-side view of the doorbell peripheral.
//
// Ring and Clear are one-way flag writes; IsBusy observes whether a
// previously rung host-to-peer flag is still unacknowledged. EnableRx and
// EnableTx mask the receive interrupt of a peer-to-host channel and the
// acknowledgement (flag cleared) interrupt of a host-to-peer channel.
type Driver interface {
	// Ring sets the host-to-peer flag of ch.
	Ring(ch Channel)
	// Clear clears the peer-to-host flag of ch, acknowledging receipt.
	Clear(ch Channel)
	// IsBusy reports whether the host-to-peer flag of ch is still set.
	IsBusy(ch Channel) bool
	// EnableRx masks or unmasks the receive interrupt of ch.
	EnableRx(ch Channel, on bool)
	// EnableTx masks or unmasks the acknowledgement interrupt of ch.
	EnableTx(ch Channel, on bool)
}

// ClockControl is the platform clock/reset collaborator. It is invoked
// exactly once, during mailbox bootstrap, to feed the doorbell peripheral.
type ClockControl interface {
	EnableClock()
}
