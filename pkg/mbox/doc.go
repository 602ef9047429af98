// Package mbox implements the shared-memory mailbox between the host core
// and the peer radio core.
package mbox

// The mailbox is a set of statically placed tables, queues and fixed-size
// buffers discovered by the peer through a reference table published once
// at boot. Buffers move between the cores by splicing their intrusive
// header between queues and ringing a payload-less doorbell flag; the
// doorbell write is the memory visibility boundary and must follow the
// last store of a transfer.
//
// Producer: host core (this driver)
// Consumer: peer core firmware (black box, fixed wire layout)
