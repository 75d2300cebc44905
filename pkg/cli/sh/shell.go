// Package sh provides the interactive bridge console.
package sh

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/bridge.go/pkg/bridge"
	fx "github.com/robotalks/bridge.go/pkg/framework"
)

// Shell provides an ishell backed console over a bridge.
//
// The poll loop pumps the bridge on a background goroutine while
// commands run on the console goroutine, so the bridge is shared
// between two goroutines here. Every access goes through bridgeLock;
// commands must use the locked helpers instead of touching Bridge
// directly.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Bridge *bridge.Bridge
	Loop   *fx.Loop

	bridgeLock sync.Mutex
}

const shellKey = "$shell"

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&SendCmd,
		&SendHexCmd,
		&RecvCmd,
		&EchoCmd,
		&StatsCmd,
		&FlowCmd,
		&ResetCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a shell around a bridge and its poll loop. The bridge
// is registered with the loop here; the caller must not add it again.
func New(b *bridge.Bridge, loop *fx.Loop) *Shell {
	s := &Shell{
		Interactive: !evalOnly,

		Shell:  ishell.New(),
		Bridge: b,
		Loop:   loop,
	}
	loop.AddPumper(fx.PumpFunc(s.pump))
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("bridge > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Run starts the poll loop in the background and the shell in the
// foreground.
func (s *Shell) Run(args ...string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- s.Loop.Run(ctx)
	}()
	defer func() {
		cancel()
		if err := <-loopErr; err != nil && err != context.Canceled {
			log.Println(err)
		}
	}()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		// One-shot invocations exit right after the command, so
		// wait for queued bytes to actually go out.
		s.drainTx(time.Second)
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func (s *Shell) pump() bool {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	return s.Bridge.Pump()
}

func (s *Shell) send(data []byte) int {
	s.bridgeLock.Lock()
	n := s.Bridge.Send(data)
	s.bridgeLock.Unlock()
	s.Loop.TriggerNext()
	return n
}

func (s *Shell) recv(max int) []byte {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	return s.Bridge.Receive(max)
}

func (s *Shell) stats() bridge.Stats {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	return s.Bridge.Stats()
}

func (s *Shell) reset() {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	s.Bridge.Reset()
}

func (s *Shell) flowEnabled() bool {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	return s.Bridge.FlowControlEnabled()
}

func (s *Shell) setFlow(enabled bool) {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	s.Bridge.SetFlowControl(enabled)
}

func (s *Shell) txPending() int {
	s.bridgeLock.Lock()
	defer s.bridgeLock.Unlock()
	return s.Bridge.TxPending()
}

func (s *Shell) drainTx(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.txPending() == 0 {
			return
		}
		s.Loop.TriggerNext()
		time.Sleep(time.Millisecond)
	}
}

func (s *Shell) queue(c *ishell.Context, data []byte) {
	n := s.send(data)
	c.Printf("%d of %d bytes queued\n", n, len(data))
}

var (
	// SendCmd queues text for transmission.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "TEXT",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("text expected"))
				return
			}
			ShellFrom(c).queue(c, []byte(strings.Join(c.Args, " ")))
		},
	}

	// SendHexCmd queues hex encoded bytes for transmission.
	SendHexCmd = ishell.Cmd{
		Name: "sendhex",
		Help: "HEXBYTES (e.g. 48 65 6c 6c 6f)",
		Func: func(c *ishell.Context) {
			var data []byte
			for _, arg := range c.Args {
				v, err := strconv.ParseUint(arg, 16, 8)
				if err != nil {
					c.Err(fmt.Errorf("bad hex byte %q", arg))
					return
				}
				data = append(data, byte(v))
			}
			if len(data) == 0 {
				c.Err(fmt.Errorf("hex bytes expected"))
				return
			}
			ShellFrom(c).queue(c, data)
		},
	}

	// RecvCmd drains received bytes.
	RecvCmd = ishell.Cmd{
		Name:    "recv",
		Aliases: []string{"r"},
		Help:    "[MAX]",
		Func: func(c *ishell.Context) {
			max := 256
			if len(c.Args) > 0 {
				v, err := strconv.Atoi(c.Args[0])
				if err != nil || v <= 0 {
					c.Err(fmt.Errorf("bad count %q", c.Args[0]))
					return
				}
				max = v
			}
			data := ShellFrom(c).recv(max)
			if len(data) == 0 {
				c.Println("no data")
				return
			}
			c.Printf("%d bytes: %q\n", len(data), string(data))
		},
	}

	// EchoCmd runs continuous echo mode for a while: everything
	// received is queued right back for transmission.
	EchoCmd = ishell.Cmd{
		Name: "echo",
		Help: "[SECONDS]",
		Func: func(c *ishell.Context) {
			dur := 10 * time.Second
			if len(c.Args) > 0 {
				v, err := strconv.Atoi(c.Args[0])
				if err != nil || v <= 0 {
					c.Err(fmt.Errorf("bad duration %q", c.Args[0]))
					return
				}
				dur = time.Duration(v) * time.Second
			}
			s := ShellFrom(c)
			c.Printf("echoing for %v ...\n", dur)
			var echoed int
			deadline := time.Now().Add(dur)
			for time.Now().Before(deadline) {
				if data := s.recv(256); len(data) > 0 {
					echoed += s.send(data)
					continue
				}
				time.Sleep(10 * time.Millisecond)
			}
			c.Printf("echoed %d bytes\n", echoed)
		},
	}

	// StatsCmd prints the bridge statistics.
	StatsCmd = ishell.Cmd{
		Name:    "stats",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			c.Println(ShellFrom(c).stats().String())
		},
	}

	// FlowCmd shows or toggles XON/XOFF flow control.
	FlowCmd = ishell.Cmd{
		Name: "flow",
		Help: "[on|off]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				if s.flowEnabled() {
					c.Println("flow control on")
				} else {
					c.Println("flow control off")
				}
				return
			}
			switch c.Args[0] {
			case "on":
				s.setFlow(true)
			case "off":
				s.setFlow(false)
			default:
				c.Err(fmt.Errorf("expected on or off"))
			}
		},
	}

	// ResetCmd clears buffers and statistics.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).reset()
			c.Println("bridge reset")
		},
	}
)
