// Command mcclient connects to a Minecraft Java Edition server, completes
// the handshake/login/configuration exchange, and runs a small scripted
// demo session: announce in chat, look around, then idle while the session
// keeps the world/entity state current in the background.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/brackenfield/mcclient/blockdata"
	"github.com/brackenfield/mcclient/protocol"
	"github.com/brackenfield/mcclient/session"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:25565", "server address")
	name := flag.String("name", "Steve", "player name (offline-mode UUID is derived from this)")
	blocksPath := flag.String("blocks", "", "path to a block-state dictionary JSON file (optional)")
	debug := flag.Bool("debug", false, "log every packet sent/received")
	flag.Parse()

	s, err := session.Connect(*addr, *name)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer s.Close()
	s.SetDebug(*debug)

	if *blocksPath != "" {
		f, err := os.Open(*blocksPath)
		if err != nil {
			log.Fatalf("open block dictionary: %v", err)
		}
		dict, err := blockdata.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("load block dictionary: %v", err)
		}
		s.SetBlockDictionary(dict)
		log.Printf("loaded %d block states", dict.Len())
	}

	s.On(&protocol.SystemChatMessage{}, func(s *session.Session, pkt protocol.Packet) {
		p := pkt.(*protocol.SystemChatMessage)
		log.Printf("[chat] %s", p.Content.Text)
	})

	s.On(&protocol.LoginPlay{}, func(s *session.Session, pkt protocol.Packet) {
		go runDemo(s)
	})

	if err := s.Run(); err != nil {
		log.Printf("session ended: %v", err)
	}
}

// runDemo announces the bot's presence and does a slow look-around, purely
// to exercise the outbound packets actions.go exposes. It does not attempt
// to do anything server-specific.
func runDemo(s *session.Session) {
	time.Sleep(time.Second)
	if err := s.SendChatMessage("hello from mcclient"); err != nil {
		log.Printf("demo: chat failed: %v", err)
		return
	}

	for yaw := float32(0); yaw < 360; yaw += 30 {
		if err := s.LookAt(yaw, 0); err != nil {
			log.Printf("demo: look failed: %v", err)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}
