// Package table implements the shared blackjack table session: seating,
// the waiting queue, the turn scheduler and round lifecycle. A table is
// an actor: every mutation arrives as an Event on a single queue and is
// applied under one lock, together with the broadcasts it produces, so
// no client ever observes a torn view of the state.
package table

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"blackjack-lite/blackjack"
	"blackjack-lite/card"
	"blackjack-lite/internal/countdown"
	"blackjack-lite/internal/history"
	"blackjack-lite/internal/protocol"
)

// TableConfig contains table settings.
type TableConfig struct {
	MaxSeats          int
	CountdownSeconds  int
	CountdownTick     time.Duration // time.Second in production
	HitsSoftSeventeen bool
	Seed              int64 // 0 => time-based deck shuffles
}

const (
	defaultMaxSeats         = 6
	defaultCountdownSeconds = 5
)

// Action is a turn command from the player holding the turn.
type Action byte

const (
	ActionHit Action = iota + 1
	ActionStand
)

// EventType enumerates the table actor's message kinds.
type EventType int

const (
	EventJoin EventType = iota
	EventLeave
	EventAction
	EventCountdownTick
	EventStartRound
	EventClose
)

// Event is a message to the table actor.
type Event struct {
	Type     EventType
	PlayerID uint64
	Name     string
	Action   Action
	Seconds  int
	Response chan error
}

// Seat is one player's place at the table. Seating order is turn order.
// A seat that departs mid-round stays in the slice, marked, until the
// round ends, so the other players' turn indices never shift.
type Seat struct {
	ID       uint64
	Name     string
	Hand     []card.Card
	departed bool
}

var (
	ErrTableClosed = errors.New("table closed")
	ErrTableFull   = errors.New("table is full")
)

// turnNone means no round is being played; len(seats) is the dealer.
const turnNone = -1

// Table owns the deck, the dealer and all seated players for one table.
type Table struct {
	ID     string
	Config TableConfig

	mu      sync.Mutex
	deck    *card.Deck
	newDeck func() *card.Deck
	dealer  *blackjack.Dealer
	seats   []*Seat
	waiting []*Seat
	turn    int

	roundActive  bool
	roundsPlayed int
	closed       bool
	stopOnce     sync.Once

	// At most one live countdown per table; join and between-round
	// countdowns share this slot.
	pending *countdown.Countdown

	events chan Event
	done   chan struct{}

	broadcast func(playerID uint64, line string)
	history   history.Service
}

// New creates a table and starts its actor goroutine.
func New(id string, cfg TableConfig, broadcastFn func(playerID uint64, line string), historyService history.Service) *Table {
	if cfg.MaxSeats <= 0 {
		cfg.MaxSeats = defaultMaxSeats
	}
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = defaultCountdownSeconds
	}
	if cfg.CountdownTick <= 0 {
		cfg.CountdownTick = time.Second
	}

	t := &Table{
		ID:        id,
		Config:    cfg,
		dealer:    blackjack.NewDealer(cfg.HitsSoftSeventeen),
		turn:      turnNone,
		events:    make(chan Event, 256),
		done:      make(chan struct{}),
		broadcast: broadcastFn,
		history:   historyService,
	}
	if cfg.Seed != 0 {
		t.newDeck = func() *card.Deck { return card.NewSeeded(cfg.Seed) }
	} else {
		t.newDeck = card.New
	}

	go t.run()

	log.Printf("[Table %s] Created (seats=%d, countdown=%ds, hitsSoft17=%v)",
		id, cfg.MaxSeats, cfg.CountdownSeconds, cfg.HitsSoftSeventeen)
	return t
}

// run is the main actor loop.
func (t *Table) run() {
	for {
		select {
		case event := <-t.events:
			err := t.handleEvent(event)
			if event.Response != nil {
				event.Response <- err
			}
		case <-t.done:
			log.Printf("[Table %s] Actor stopped", t.ID)
			return
		}
	}
}

// handleEvent processes a single event under the table lock.
func (t *Table) handleEvent(e Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed && e.Type != EventClose {
		return ErrTableClosed
	}

	switch e.Type {
	case EventJoin:
		return t.handleJoin(e.PlayerID, e.Name)
	case EventLeave:
		return t.handleLeave(e.PlayerID)
	case EventAction:
		return t.handleAction(e.PlayerID, e.Action)
	case EventCountdownTick:
		t.handleCountdownTick(e.Seconds)
		return nil
	case EventStartRound:
		return t.handleStartRound()
	case EventClose:
		t.stopLocked()
		return nil
	default:
		return fmt.Errorf("unknown event type: %d", e.Type)
	}
}

func (t *Table) handleJoin(playerID uint64, name string) error {
	if len(t.seats)+len(t.waiting) >= t.Config.MaxSeats {
		return ErrTableFull
	}

	seat := &Seat{ID: playerID, Name: t.uniqueNameLocked(name, playerID)}

	if t.roundActive {
		t.waiting = append(t.waiting, seat)
		log.Printf("[Table %s] Player %d (%s) queued for next round", t.ID, playerID, seat.Name)
		t.broadcastAllLocked(protocol.JoinWaitLine(seat.Name))
		return nil
	}

	wasEmpty := len(t.seats) == 0
	t.seats = append(t.seats, seat)
	log.Printf("[Table %s] Player %d (%s) joined", t.ID, playerID, seat.Name)
	t.broadcastAllLocked(protocol.JoinLine(seat.Name))

	// The first-ever join starts the join countdown. A table that
	// emptied out after playing also gets one, otherwise it could
	// never restart.
	if t.pending == nil && (t.roundsPlayed == 0 || wasEmpty) {
		t.startCountdownLocked()
	}
	return nil
}

func (t *Table) uniqueNameLocked(name string, playerID uint64) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Player%d", playerID)
	}
	base := name
	for n := 2; t.nameTakenLocked(name); n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	return name
}

func (t *Table) nameTakenLocked(name string) bool {
	for _, s := range t.seats {
		if s.Name == name {
			return true
		}
	}
	for _, s := range t.waiting {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (t *Table) handleLeave(playerID uint64) error {
	for i, s := range t.waiting {
		if s.ID == playerID {
			t.waiting = append(t.waiting[:i], t.waiting[i+1:]...)
			log.Printf("[Table %s] Waiting player %d (%s) left", t.ID, playerID, s.Name)
			t.broadcastAllLocked(protocol.LeaveLine(s.Name))
			return nil
		}
	}

	idx := -1
	for i, s := range t.seats {
		if s.ID == playerID && !s.departed {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	seat := t.seats[idx]
	log.Printf("[Table %s] Player %d (%s) left", t.ID, playerID, seat.Name)

	if !t.roundActive {
		t.seats = append(t.seats[:idx], t.seats[idx+1:]...)
		t.broadcastAllLocked(protocol.LeaveLine(seat.Name))
		if len(t.seats) == 0 {
			t.cancelCountdownLocked()
		}
		return nil
	}

	// Mid-round: mark in place so other players' turn indices hold.
	seat.departed = true
	t.broadcastAllLocked(protocol.LeaveLine(seat.Name))

	if t.liveSeatCountLocked() == 0 {
		t.abandonRoundLocked()
		return nil
	}
	if idx == t.turn {
		t.advanceTurnLocked()
	}
	return nil
}

func (t *Table) liveSeatCountLocked() int {
	n := 0
	for _, s := range t.seats {
		if !s.departed {
			n++
		}
	}
	return n
}

// abandonRoundLocked tears down a round whose players all disconnected.
// No resolution is broadcast.
func (t *Table) abandonRoundLocked() {
	log.Printf("[Table %s] Round %d abandoned, all players left", t.ID, t.roundsPlayed)
	t.finishRoundLocked()
}

func (t *Table) handleCountdownTick(seconds int) {
	// A tick queued behind a cancellation or a round start is stale.
	if t.pending == nil || t.roundActive {
		return
	}
	t.broadcastAllLocked(protocol.CountdownLine(seconds))
}

func (t *Table) handleStartRound() error {
	t.cancelCountdownLocked()
	if t.roundActive || len(t.seats) == 0 {
		return nil
	}

	t.broadcastAllLocked(protocol.GameStartLine())

	t.roundsPlayed++
	t.deck = t.newDeck()
	t.dealer.ClearHand()
	for _, s := range t.seats {
		s.Hand = nil
	}

	// Interleaved deal: once around the players plus the dealer, twice.
	for i := 0; i < 2; i++ {
		for _, s := range t.seats {
			s.Hand = append(s.Hand, t.deck.Deal())
		}
		t.dealer.AddCard(t.deck.Deal())
	}

	t.roundActive = true
	log.Printf("[Table %s] Round %d started with %d players", t.ID, t.roundsPlayed, len(t.seats))

	t.broadcastAllLocked(protocol.RoundStartLine())
	t.broadcastStateLocked()

	// A natural anywhere ends turn-taking before it begins.
	natural := blackjack.Total(t.dealer.Hand) == 21
	for _, s := range t.seats {
		if blackjack.Total(s.Hand) == 21 {
			natural = true
		}
	}
	if natural {
		t.turn = turnNone
		t.broadcastAllLocked(protocol.DealerRevealLine(t.dealer.Hand))
		t.resolveLocked()
		return nil
	}

	t.turn = 0
	t.broadcastAllLocked(protocol.TurnLine(t.seats[0].Name))
	return nil
}

// handleAction applies HIT/STAND from the player at the current turn.
// Stray actions (wrong player, no round running) are dropped without
// error: clients routinely race their own prompts.
func (t *Table) handleAction(playerID uint64, action Action) error {
	if !t.roundActive || t.turn < 0 || t.turn >= len(t.seats) {
		return nil
	}
	seat := t.seats[t.turn]
	if seat.ID != playerID || seat.departed {
		return nil
	}

	switch action {
	case ActionHit:
		c := t.deck.Deal()
		seat.Hand = append(seat.Hand, c)
		t.broadcastAllLocked(protocol.HitLine(seat.Name, c))
		t.broadcastStateLocked()

		switch total := blackjack.Total(seat.Hand); {
		case total == 21:
			t.broadcastAllLocked(protocol.BlackjackLine(seat.Name))
			t.advanceTurnLocked()
		case total > 21:
			t.broadcastAllLocked(protocol.BustLine(seat.Name))
			t.advanceTurnLocked()
		}
		// Under 21 the player keeps the turn.

	case ActionStand:
		t.broadcastAllLocked(protocol.StandLine(seat.Name))
		t.advanceTurnLocked()
	}
	return nil
}

// advanceTurnLocked moves to the next seat in seating order. Departed
// seats are skipped; busted seats are not, but a bust always ends the
// busting player's own slot, so no seat acts twice.
func (t *Table) advanceTurnLocked() {
	t.turn++
	for t.turn < len(t.seats) && t.seats[t.turn].departed {
		t.turn++
	}
	if t.turn >= len(t.seats) {
		t.dealerTurnLocked()
		return
	}
	t.broadcastAllLocked(protocol.TurnLine(t.seats[t.turn].Name))
}

func (t *Table) dealerTurnLocked() {
	t.broadcastAllLocked(protocol.TurnLine("Dealer"))
	t.broadcastAllLocked(protocol.DealerRevealLine(t.dealer.Hand))

	drew := false
	t.dealer.PlayOut(t.deck, func(c card.Card) {
		drew = true
		t.broadcastAllLocked(protocol.DealerHitLine(c))
	})
	if drew {
		t.broadcastAllLocked(protocol.DealerRevealLine(t.dealer.Hand))
	}
	t.resolveLocked()
}

func (t *Table) resolveLocked() {
	var winners, pushes, losers []string
	for _, s := range t.seats {
		if s.departed {
			continue
		}
		outcome := blackjack.Resolve(s.Hand, t.dealer.Hand)
		t.broadcastAllLocked(protocol.ResultLine(s.Name, outcome))
		switch outcome {
		case blackjack.OutcomeWin:
			winners = append(winners, s.Name)
		case blackjack.OutcomePush:
			pushes = append(pushes, s.Name)
		default:
			losers = append(losers, s.Name)
		}
	}
	t.broadcastAllLocked(protocol.SummaryLine(winners, pushes, losers))
	t.broadcastAllLocked(protocol.RoundEndLine())
	log.Printf("[Table %s] Round %d resolved: %d win / %d push / %d lose",
		t.ID, t.roundsPlayed, len(winners), len(pushes), len(losers))

	t.recordRoundLocked(winners, pushes, losers)
	t.finishRoundLocked()
}

// finishRoundLocked resets round state, folds in the waiting queue and
// schedules the next round if anyone is still seated.
func (t *Table) finishRoundLocked() {
	t.roundActive = false
	t.turn = turnNone
	t.dealer.ClearHand()

	kept := t.seats[:0]
	for _, s := range t.seats {
		s.Hand = nil
		if !s.departed {
			kept = append(kept, s)
		}
	}
	t.seats = kept

	for len(t.waiting) > 0 && len(t.seats) < t.Config.MaxSeats {
		seat := t.waiting[0]
		t.waiting = t.waiting[1:]
		t.seats = append(t.seats, seat)
		t.broadcastAllLocked(protocol.JoinLine(seat.Name))
	}

	if len(t.seats) > 0 {
		t.startCountdownLocked()
	}
}

func (t *Table) recordRoundLocked(winners, pushes, losers []string) {
	if t.history == nil {
		return
	}
	rec := history.RoundRecord{
		ID:          uuid.NewString(),
		TableID:     t.ID,
		Round:       t.roundsPlayed,
		Winners:     strings.Join(winners, ","),
		Pushes:      strings.Join(pushes, ","),
		Losers:      strings.Join(losers, ","),
		DealerTotal: blackjack.Total(t.dealer.Hand),
		PlayedAt:    time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := t.history.RecordRound(ctx, rec); err != nil {
			log.Printf("[Table %s] record round %d failed: %v", t.ID, rec.Round, err)
		}
	}()
}

// startCountdownLocked arms the round-start countdown. Starting one
// while another is pending is a no-op.
func (t *Table) startCountdownLocked() {
	if t.pending != nil || t.closed {
		return
	}
	t.pending = countdown.StartWithInterval(
		t.Config.CountdownSeconds,
		t.Config.CountdownTick,
		func(remaining int) {
			_ = t.SubmitEvent(Event{Type: EventCountdownTick, Seconds: remaining})
		},
		func() {
			_ = t.SubmitEvent(Event{Type: EventStartRound})
		},
	)
}

func (t *Table) cancelCountdownLocked() {
	if t.pending == nil {
		return
	}
	t.pending.Cancel()
	t.pending = nil
}

// --- Broadcast helpers ---

// broadcastAllLocked fans a line out to every connected client of this
// table, in emission order. Must hold t.mu so the line matches the state
// that produced it.
func (t *Table) broadcastAllLocked(line string) {
	for _, s := range t.seats {
		if s.departed {
			continue
		}
		t.broadcast(s.ID, line)
	}
	for _, s := range t.waiting {
		t.broadcast(s.ID, line)
	}
}

func (t *Table) broadcastStateLocked() {
	for _, s := range t.seats {
		if s.departed {
			continue
		}
		t.broadcastAllLocked(protocol.PlayerStateLine(s.Name, s.Hand))
	}
	if len(t.dealer.Hand) > 0 {
		t.broadcastAllLocked(protocol.DealerHiddenLine(t.dealer.Hand[0]))
	}
}

// --- Public surface ---

// SubmitEvent sends an event to the actor and waits for the result.
func (t *Table) SubmitEvent(e Event) error {
	if e.Response == nil {
		e.Response = make(chan error, 1)
	}

	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ErrTableClosed
	}

	select {
	case t.events <- e:
	case <-t.done:
		return ErrTableClosed
	}

	select {
	case err := <-e.Response:
		return err
	case <-t.done:
		return ErrTableClosed
	}
}

// HasCapacity reports whether another player can join or queue.
func (t *Table) HasCapacity() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed && len(t.seats)+len(t.waiting) < t.Config.MaxSeats
}

// Stop shuts down the table actor.
func (t *Table) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Table) stopLocked() {
	t.closed = true
	t.cancelCountdownLocked()
	t.stopOnce.Do(func() {
		close(t.done)
	})
}
