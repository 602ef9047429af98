// Package mon bridges received mailbox events to an MQTT broker for
// observation.
package mon

// Events are published as the raw ABI bytes (kind, event code, length,
// payload); nothing above opaque buffer delivery is interpreted here.
