package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/corelink/mbox.go/pkg/ipcc/sim"
	"github.com/corelink/mbox.go/pkg/mbox"
	"github.com/corelink/mbox.go/pkg/mon"
	"github.com/corelink/mbox.go/pkg/peer"
	"github.com/corelink/mbox.go/pkg/run"
)

var (
	mqttURL  = "mqtt://localhost:1883/mbox/"
	interval = 2 * time.Second
)

func init() {
	if val := os.Getenv("MBOX_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.DurationVar(&interval, "interval", interval, "Demo command interval.")
}

// demoTraffic periodically sends a vendor command so the simulated peer
// produces events to observe.
func demoTraffic(mb *mbox.Mailbox) run.Func {
	return func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := mb.SendCmd([]byte{0x03, 0x0c, 0x00}); err != nil {
					return err
				}
			}
		}
	}
}

func main() {
	flag.Parse()

	ph := sim.New()
	defer ph.Close()

	mb := mbox.Init(ph.Host(), ph)
	ph.SetHostHandlers(mb.RxInterrupt, mb.TxFreeInterrupt)
	peer.Boot(mb.Memory(), ph.Peer())

	pub, err := mon.NewPublisherFromURL(mqttURL)
	if err != nil {
		glog.Exitf("bad MQTT URL: %v", err)
	}
	if err = pub.Connect(); err != nil {
		glog.Exitf("MQTT connect: %v", err)
	}
	defer pub.Close()

	monitor := mon.New(mb, pub)
	glog.Infof("publishing events to %s%s", pub.TopicPrefix, monitor.Topic)

	err = run.NewRunner().
		HandleSignals().
		Go(monitor, demoTraffic(mb)).
		Wait()
	if err != nil {
		glog.Exit(err)
	}
}
