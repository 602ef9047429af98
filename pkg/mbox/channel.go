package mbox

import "github.com/corelink/mbox.go/pkg/ipcc"

// Host-to-peer channel purposes, bound at compile time.
const (
	ChBleCmd          = ipcc.Channel1
	ChSysCmdRsp       = ipcc.Channel2
	ChThreadOtCmdRsp  = ipcc.Channel3
	ChMMReleaseBuffer = ipcc.Channel4
	// Channel5 carries nothing host-to-peer.
	ChHciAclData = ipcc.Channel6
)

// Peer-to-host channel purposes.
const (
	ChBleEvent          = ipcc.Channel1
	ChSysEvent          = ipcc.Channel2
	ChThreadNotifAck    = ipcc.Channel3
	ChTraces            = ipcc.Channel4
	ChThreadCliNotifAck = ipcc.Channel5
)
