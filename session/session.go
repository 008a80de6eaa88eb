// Package session drives one client connection through the
// handshake/login/configuration/play state machine: it owns the socket, the
// inbound/outbound framers, and the core handlers every session needs
// (keep-alive echoing, chunk/entity bookkeeping, teleport confirmation)
// before handing packets to any application-registered handler.
package session

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/brackenfield/mcclient/blockdata"
	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/player"
	"github.com/brackenfield/mcclient/protocol"
	"github.com/brackenfield/mcclient/transport"
	"github.com/brackenfield/mcclient/world"
)

// Handler is an application callback for one packet type. It is invoked
// with the typed packet already decoded; core handlers for the same type
// (if any) run first.
type Handler func(s *Session, pkt protocol.Packet)

// handlerQueueSize bounds the worker pool's inbox, per spec.md §5's
// backpressure requirement: a slow application handler stalls new packet
// delivery rather than letting memory grow unbounded.
const handlerQueueSize = 256

const workerCount = 4

type dispatchItem struct {
	pkt protocol.Packet
}

// Session is one client connection's full state: transport, framing,
// protocol state, world/entity bookkeeping, and the local player.
type Session struct {
	conn       *transport.Conn
	inFramer   *protocol.Framer
	outFramer  *protocol.Framer
	writeMu    sync.Mutex

	stateMu sync.RWMutex
	state   protocol.State

	handlersMu sync.RWMutex
	handlers   map[reflect.Type][]Handler

	Chunks   *world.ChunkManager
	Entities *world.EntityManager
	Player   *player.Player

	// Blocks resolves BLOCK_UPDATE/chunk section state IDs to names. It is
	// nil until SetBlockDictionary is called; core handlers that only store
	// raw state IDs (ChunkManager.SetBlockAt) work fine without it.
	Blocks *blockdata.Dictionary

	logger *log.Logger
	debug  bool

	work chan dispatchItem
	quit chan struct{}
	wg   sync.WaitGroup

	// lastTeleportID is never set or read; the core handler echoes each
	// SynchronizePlayerPosition's own TeleportID in ConfirmTeleportation.
	lastTeleportID ns.VarInt

	// chunkBatchStartedAt marks when the current CHUNK_BATCH_START fired,
	// used with the finishing packet's BatchSize to compute the
	// processing-rate reply spec.md §4.4 requires.
	chunkBatchStartedAt time.Time
}

// New creates a Session around an already-dialed transport connection. The
// session starts in the Handshaking state with compression disabled.
func New(conn *transport.Conn, name string) *Session {
	s := &Session{
		conn:      conn,
		inFramer:  protocol.NewFramer(),
		outFramer: protocol.NewFramer(),
		state:     protocol.Handshaking,
		handlers:  make(map[reflect.Type][]Handler),
		Chunks:    world.NewChunkManager(),
		Entities:  world.NewEntityManager(),
		Player:    player.New(name),
		logger:    log.New(os.Stdout, "[session] ", log.LstdFlags),
		work:      make(chan dispatchItem, handlerQueueSize),
		quit:      make(chan struct{}),
	}
	return s
}

// SetBlockDictionary attaches the block-state dictionary used to resolve
// state IDs surfaced in chunk data and BLOCK_UPDATE to human-readable names.
func (s *Session) SetBlockDictionary(d *blockdata.Dictionary) { s.Blocks = d }

// SetDebug toggles verbose packet logging.
func (s *Session) SetDebug(enabled bool) { s.debug = enabled }

func (s *Session) debugf(format string, args ...any) {
	if s.debug {
		s.logger.Printf(format, args...)
	}
}

// State returns the session's current protocol state.
func (s *Session) State() protocol.State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *Session) setState(st protocol.State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
	s.debugf("state -> %s", st)
}

// On registers an application handler for packets of the same Go type as
// example (a zero-value instance is enough; only its type is consulted).
// Handlers are copy-on-write per packet type, per spec.md §4.4/§9's
// explicit suggestion, so On is safe to call while the dispatch loop is
// running.
func (s *Session) On(example protocol.Packet, fn Handler) {
	t := reflect.TypeOf(example)
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	existing := s.handlers[t]
	updated := make([]Handler, len(existing)+1)
	copy(updated, existing)
	updated[len(existing)] = fn
	s.handlers[t] = updated
}

func (s *Session) handlersFor(pkt protocol.Packet) []Handler {
	s.handlersMu.RLock()
	defer s.handlersMu.RUnlock()
	return s.handlers[reflect.TypeOf(pkt)]
}

// Send encodes and writes one packet. Only the packet's Bound is checked
// (clientbound packet types are refused); its State is not compared with
// the session's current state.
func (s *Session) Send(pkt protocol.Packet) error {
	if pkt.Bound() != protocol.Serverbound {
		return fmt.Errorf("session: refusing to send a clientbound packet type %T", pkt)
	}

	buf := ns.NewWriter()
	if err := pkt.Encode(buf); err != nil {
		return fmt.Errorf("encode %T: %w", pkt, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	wire, err := s.outFramer.Encode(pkt.ID(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("frame %T: %w", pkt, err)
	}
	if _, err := s.conn.Write(wire); err != nil {
		return fmt.Errorf("write %T: %w", pkt, err)
	}
	s.debugf("-> %T", pkt)
	return nil
}

// setCompression enables compression framing on both directions at once,
// since SET_COMPRESSION applies symmetrically from the packet after which
// it was received.
func (s *Session) setCompression(threshold int) {
	s.inFramer.SetCompressionThreshold(threshold)
	s.writeMu.Lock()
	s.outFramer.SetCompressionThreshold(threshold)
	s.writeMu.Unlock()
}

// Run starts the I/O actor (this call blocks) and the handler worker pool
// (background goroutines). It returns when the connection closes or a
// fatal protocol error occurs.
func (s *Session) Run() error {
	for range workerCount {
		s.wg.Add(1)
		go s.workerLoop()
	}
	defer func() {
		close(s.quit)
		s.wg.Wait()
	}()

	readBuf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(readBuf)
		if n > 0 {
			s.inFramer.Feed(readBuf[:n])
			if derr := s.drainInbound(); derr != nil {
				return derr
			}
		}
		if err != nil {
			return fmt.Errorf("connection closed: %w", err)
		}
	}
}

func (s *Session) drainInbound() error {
	for {
		dp, err := s.inFramer.Next()
		if err != nil {
			return fmt.Errorf("framing error: %w", err)
		}
		if dp == nil {
			return nil
		}

		desc, ok := protocol.Lookup(s.State(), protocol.Clientbound, dp.ID)
		if !ok {
			s.debugf("unknown packet id 0x%02X in state %s, discarding", dp.ID, s.State())
			continue
		}

		pkt := desc.NewFunc()
		if err := pkt.Decode(ns.NewReader(dp.Data)); err != nil {
			return fmt.Errorf("decode %s: %w", desc.Name, err)
		}
		s.debugf("<- %s", desc.Name)

		// Core handlers run synchronously in the I/O actor so state
		// transitions (e.g. Configuration -> Play) and replies that must
		// precede the next inbound packet (CONFIRM_TELEPORTATION before
		// further movement packets) happen in order. Application handlers
		// run on the worker pool so a slow callback never stalls framing.
		s.runCoreHandlers(pkt)
		select {
		case s.work <- dispatchItem{pkt: pkt}:
		case <-s.quit:
			return nil
		}
	}
}

func (s *Session) workerLoop() {
	defer s.wg.Done()
	for {
		select {
		case item := <-s.work:
			for _, h := range s.handlersFor(item.pkt) {
				h(s, item.pkt)
			}
		case <-s.quit:
			return
		}
	}
}

// Close tears down the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}
