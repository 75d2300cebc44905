package main

import (
	"flag"
	"log"
	"net"
	"os"

	"github.com/robotalks/bridge.go/pkg/bridge"
	"github.com/robotalks/bridge.go/pkg/cli/sh"
	fx "github.com/robotalks/bridge.go/pkg/framework"
	"github.com/robotalks/bridge.go/pkg/transport"
	"github.com/robotalks/bridge.go/pkg/transport/stream"
	"github.com/robotalks/bridge.go/pkg/transport/ws"
)

//go-build: CGO_ENABLED=0

var (
	devPath   string
	connectTo string
	wsURL     string
)

func init() {
	flag.StringVar(&devPath, "dev", devPath, "Serial device path.")
	flag.StringVar(&connectTo, "connect", connectTo, "TCP address of the remote byte stream.")
	flag.StringVar(&wsURL, "ws", wsURL, "Websocket URL of the remote byte stream.")
}

func main() {
	flag.Parse()

	loop := fx.NewLoop()
	var t bridge.Transport
	switch {
	case devPath != "":
		f, err := os.OpenFile(devPath, os.O_RDWR, 0)
		if err != nil {
			log.Fatalln(err)
		}
		st := stream.New(f)
		loop.AddRunnable(fx.NamedRun("stream", st))
		t = st
	case connectTo != "":
		conn, err := net.Dial("tcp", connectTo)
		if err != nil {
			log.Fatalln(err)
		}
		st := stream.New(conn)
		loop.AddRunnable(fx.NamedRun("stream", st))
		t = st
	case wsURL != "":
		st, err := ws.Dial(wsURL, "")
		if err != nil {
			log.Fatalln(err)
		}
		loop.AddRunnable(fx.NamedRun("ws", st))
		t = st
	default:
		// Loopback mode for local experiments: whatever is sent
		// comes straight back.
		local, remote := transport.Pair(64)
		loop.AddPumper(fx.PumpFunc(transport.EchoPump(remote)))
		t = local
	}

	b := bridge.New(t)
	sh.New(b, loop).Run(flag.Args()...)
}
