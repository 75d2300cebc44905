package main

import (
	"flag"
	"io"
	"log"
	"net"
	"os"

	"github.com/robotalks/bridge.go/pkg/bridge"
	"github.com/robotalks/bridge.go/pkg/env"
	fx "github.com/robotalks/bridge.go/pkg/framework"
	"github.com/robotalks/bridge.go/pkg/gateway"
	"github.com/robotalks/bridge.go/pkg/transport/mqtt"
	"github.com/robotalks/bridge.go/pkg/transport/stream"
)

//go-build: CGO_ENABLED=0

var (
	devPath   string
	connectTo string
	mqttURL   = "mqtt://localhost:1883/bridge/"
	name      = "uart0"
	noFlow    bool
)

func init() {
	if val := os.Getenv("BRIDGE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&devPath, "dev", devPath, "Serial device path.")
	flag.StringVar(&connectTo, "connect", connectTo, "TCP address of the remote byte stream.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&name, "name", name, "Bridge name, used as topic prefix.")
	flag.BoolVar(&noFlow, "no-flow-control", noFlow, "Disable XON/XOFF flow control.")
}

func main() {
	flag.Parse()

	var rw io.ReadWriteCloser
	switch {
	case devPath != "":
		f, err := os.OpenFile(devPath, os.O_RDWR, 0)
		if err != nil {
			log.Fatalln(err)
		}
		rw = f
	case connectTo != "":
		conn, err := net.Dial("tcp", connectTo)
		if err != nil {
			log.Fatalln(err)
		}
		rw = conn
	default:
		log.Fatalln("either -dev or -connect is required")
	}

	q, err := mqtt.NewQueueFromURL(mqttURL, env.ClientID("bridged"))
	if err != nil {
		log.Fatalln(err)
	}
	if err = q.Connect(); err != nil {
		log.Fatalln(err)
	}
	defer q.Close()

	st := stream.New(rw)
	b := bridge.New(st)
	if noFlow {
		b.SetFlowControl(false)
	}
	gw := gateway.New(b, q, name)

	loop := fx.NewLoop()
	loop.AddPumper(b, gw)
	loop.AddRunnable(fx.NamedRun("stream", st))

	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		log.Fatalln(err)
	}
}
