package main

//go-build: CGO_ENABLED=0

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/corelink/mbox.go/pkg/ipcc/sim"
	"github.com/corelink/mbox.go/pkg/mbox"
	"github.com/corelink/mbox.go/pkg/peer"
)

func parseHex(arg string) ([]byte, error) {
	if arg == "" {
		return nil, nil
	}
	return hex.DecodeString(arg)
}

func parseU16(arg string) (uint16, error) {
	v, err := strconv.ParseUint(arg, 0, 16)
	return uint16(v), err
}

func cmdCmd(mb *mbox.Mailbox) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "cmd",
		Help: "cmd <opcode> [hex params] - send a BLE command",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("usage: %s", c.Cmd.Help))
				return
			}
			opcode, err := parseU16(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			var params []byte
			if len(c.Args) > 1 {
				if params, err = parseHex(c.Args[1]); err != nil {
					c.Err(err)
					return
				}
			}
			raw := append([]byte{byte(opcode), byte(opcode >> 8), byte(len(params))}, params...)
			if err = mb.SendCmd(raw); err != nil {
				c.Err(err)
				return
			}
			c.Printf("sent opcode %#04x, %d param bytes\n", opcode, len(params))
		},
	}
}

func aclCmd(mb *mbox.Mailbox) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "acl",
		Help: "acl <handle> [hex data] - send link-layer data",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("usage: %s", c.Cmd.Help))
				return
			}
			handle, err := parseU16(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			var data []byte
			if len(c.Args) > 1 {
				if data, err = parseHex(c.Args[1]); err != nil {
					c.Err(err)
					return
				}
			}
			raw := make([]byte, 4+len(data))
			raw[0], raw[1] = byte(handle), byte(handle>>8)
			raw[2], raw[3] = byte(len(data)), byte(len(data)>>8)
			copy(raw[4:], data)
			if err = mb.SendAclData(raw); err != nil {
				c.Err(err)
				return
			}
			c.Printf("sent %d data bytes on handle %#04x\n", len(data), handle)
		},
	}
}

func eventsCmd(mb *mbox.Mailbox) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "events",
		Help: "events - drain and print pending events",
		Func: func(c *ishell.Context) {
			n := 0
			for {
				select {
				case box := <-mb.Events():
					mbox.WithEvt(box, func(b *mbox.EvtBox) {
						c.Printf("evt code=%#02x payload=%s\n",
							b.EvtCode(), hex.EncodeToString(b.Payload()))
					})
					n++
				default:
					c.Printf("%d event(s)\n", n)
					return
				}
			}
		},
	}
}

func main() {
	flag.Parse()

	ph := sim.New()
	defer ph.Close()

	mb := mbox.Init(ph.Host(), ph)
	ph.SetHostHandlers(mb.RxInterrupt, mb.TxFreeInterrupt)
	peer.Boot(mb.Memory(), ph.Peer())

	shell := ishell.New()
	shell.Println("mailbox shell (simulated peer)")
	shell.SetPrompt("mbox > ")
	shell.AddCmd(cmdCmd(mb))
	shell.AddCmd(aclCmd(mb))
	shell.AddCmd(eventsCmd(mb))
	shell.Run()
}
