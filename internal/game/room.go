package game

import (
	rand "math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/blackjack/internal/deck"
)

// Phase is the room-wide stage of the game.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseBetting
	PhasePlaying
	PhaseFinished
	PhaseEnded
)

// String returns the wire value of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseBetting:
		return "betting"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type dealerHand struct {
	Hand  []deck.Card
	Score int
}

// Room runs one game instance: it owns the deck, the dealer and every player
// record, and is the single writer of all of them. Every exported method and
// every timer callback takes the room mutex, so the aggregate status checks
// that complete a betting or playing phase cannot interleave.
type Room struct {
	mu      sync.Mutex
	id      string
	creator string
	players map[string]*Player
	order   []string // join order, for creator hand-off
	deck    *deck.Deck
	dealer  dealerHand
	phase   Phase
	round   int

	cfg    Config
	clock  quartz.Clock
	sender Sender
	rng    *rand.Rand
	logger *log.Logger

	bettingTimer  *quartz.Timer
	playTimer     *quartz.Timer
	roundEndTimer *quartz.Timer

	// closed marks a destroyed room so late timer callbacks become no-ops.
	closed bool
}

func newRoom(id string, cfg Config, clock quartz.Clock, sender Sender, rng *rand.Rand, logger *log.Logger) *Room {
	return &Room{
		id:      id,
		players: make(map[string]*Player),
		phase:   PhaseWaiting,
		cfg:     cfg,
		clock:   clock,
		sender:  sender,
		rng:     rng,
		logger:  logger.WithPrefix("room").With("id", id),
	}
}

// ID returns the room code.
func (r *Room) ID() string {
	return r.id
}

// Phase returns the current game phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Round returns the current round number, starting at 1 for the first round.
func (r *Room) Round() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round
}

// Creator returns the handle of the current room creator.
func (r *Room) Creator() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creator
}

// PlayerCount returns the number of participants in the room.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Join adds a participant. Joining is only possible while the room is
// waiting to start or taking bets; a mid-betting joiner sits out until the
// next round. The first participant becomes the creator.
func (r *Room) Join(handle, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomNotFound
	}
	if r.phase != PhaseWaiting && r.phase != PhaseBetting {
		return ErrGameInProgress
	}

	r.players[handle] = newPlayer(handle, name, r.cfg.StartingChips)
	r.order = append(r.order, handle)
	if r.creator == "" {
		r.creator = handle
	}
	r.logger.Info("player joined", "player", name, "handle", handle, "players", len(r.players))

	r.sender.Send(handle, Event{Type: EventJoinSuccess, Data: r.snapshotFor(handle)})
	if len(r.players) > 1 {
		r.broadcast()
	}
	return nil
}

// Leave removes a participant. It reports whether the room became empty; the
// registry destroys empty rooms. A departing creator hands the role to the
// longest-standing remaining participant.
func (r *Room) Leave(handle string) (left, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[handle]
	if !ok {
		return false, false
	}
	delete(r.players, handle)
	for i, h := range r.order {
		if h == handle {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Info("player left", "player", p.Name, "handle", handle, "remaining", len(r.players))

	if len(r.players) == 0 {
		r.stopTimers()
		r.closed = true
		return true, true
	}
	if r.creator == handle {
		r.creator = r.order[0]
		r.logger.Info("creator reassigned", "handle", r.creator)
	}
	r.broadcast()
	return true, false
}

// Start begins the first betting phase. Only the creator may start, and only
// before the first round has been played.
func (r *Room) Start(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if handle != r.creator {
		r.reject(handle, "only the room creator can start the game")
		return
	}
	if r.phase != PhaseWaiting || r.round != 0 {
		r.reject(handle, "the game has already started")
		return
	}
	r.startBetting()
}

// PlaceBet records a bet for an eligible player. When every player still in
// the round has bet, the deal begins immediately, preempting the betting
// timer.
func (r *Room) PlaceBet(handle string, amount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	p := r.players[handle]
	if p == nil || r.phase != PhaseBetting || p.Status != StatusBetting {
		r.reject(handle, ErrIllegalAction.Error())
		return
	}
	if amount <= 0 || amount > p.Chips {
		r.reject(handle, ErrInvalidBet.Error())
		return
	}

	p.Bet = amount
	p.Status = StatusBetPlaced
	r.logger.Debug("bet placed", "player", p.Name, "amount", amount)
	r.broadcast()
	r.maybeDeal()
}

// Hit draws one card for a playing player, busting them past 21.
func (r *Room) Hit(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	p := r.players[handle]
	if p == nil || r.phase != PhasePlaying || p.Status != StatusPlaying {
		r.reject(handle, ErrIllegalAction.Error())
		return
	}

	card, ok := r.draw()
	if !ok {
		return
	}
	p.Hand = append(p.Hand, card)
	p.Score = Score(p.Hand)
	if p.Score > 21 {
		p.Status = StatusBust
	}
	r.maybeResolve()
}

// Stand ends a playing player's turn.
func (r *Room) Stand(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	p := r.players[handle]
	if p == nil || r.phase != PhasePlaying || p.Status != StatusPlaying {
		r.reject(handle, ErrIllegalAction.Error())
		return
	}

	p.Status = StatusStand
	r.maybeResolve()
}

// DoubleDown doubles the player's bet for exactly one more card, then forces
// stand or bust. Only allowed on the initial two cards with chips to cover
// the extra stake.
func (r *Room) DoubleDown(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	p := r.players[handle]
	if p == nil || r.phase != PhasePlaying || p.Status != StatusPlaying {
		r.reject(handle, ErrIllegalAction.Error())
		return
	}
	if len(p.Hand) != 2 || p.Chips < p.Bet {
		r.reject(handle, ErrIllegalAction.Error())
		return
	}

	p.Chips -= p.Bet
	p.Bet *= 2

	card, ok := r.draw()
	if !ok {
		return
	}
	p.Hand = append(p.Hand, card)
	p.Score = Score(p.Hand)
	if p.Score > 21 {
		p.Status = StatusBust
	} else {
		p.Status = StatusStand
	}
	r.maybeResolve()
}

// Snapshot returns the personalized view of the room for one participant.
func (r *Room) Snapshot(viewer string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotFor(viewer)
}

// startBetting opens a new round. Callers hold the lock.
func (r *Room) startBetting() {
	r.stopTimers()
	r.round++
	r.phase = PhaseBetting

	eligible := 0
	for _, p := range r.players {
		p.resetForRound()
		if p.Chips < r.cfg.MinimumBet {
			p.Status = StatusOut
		} else {
			p.Status = StatusBetting
			eligible++
		}
	}
	r.dealer = dealerHand{}
	r.broadcast()

	if eligible == 0 {
		r.phase = PhaseEnded
		r.logger.Info("no eligible players, ending game", "round", r.round)
		r.sendAll(Event{Type: EventGameOver, Data: GameOverPayload{
			Message: "No players can cover the minimum bet. The game is over.",
		}})
		return
	}

	r.logger.Info("betting phase started", "round", r.round, "eligible", eligible)
	r.sendAll(Event{Type: EventBettingTimer, Data: TimerPayload{DurationMS: durationMS(r.cfg.BettingTimeout)}})
	r.bettingTimer = r.clock.AfterFunc(r.cfg.BettingTimeout, r.onBettingTimeout)
}

// onBettingTimeout folds players who never bet and deals anyway.
func (r *Room) onBettingTimeout() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseBetting {
		return
	}
	for _, p := range r.players {
		if p.Status == StatusBetting {
			p.Status = StatusFolded
		}
	}
	r.logger.Info("betting timer expired", "round", r.round)
	r.deal()
}

// maybeDeal advances to the deal once every player still in the round has a
// bet down. Both the bet handler and the betting timer funnel through the
// phase guard in deal, so the transition cannot fire twice.
func (r *Room) maybeDeal() {
	if r.phase != PhaseBetting {
		return
	}
	for _, p := range r.players {
		if p.Status == StatusOut || p.Status == StatusFolded {
			continue
		}
		if p.Status != StatusBetPlaced {
			return
		}
	}
	r.deal()
}

// deal rebuilds the deck and hands two cards to every player with a bet and
// to the dealer. A 21 on the deal is an immediate blackjack stand.
func (r *Room) deal() {
	r.stopTimer(&r.bettingTimer)
	r.phase = PhasePlaying
	r.deck = deck.New(r.rng)

	for _, p := range r.players {
		if p.Status != StatusBetPlaced {
			continue
		}
		for i := 0; i < 2; i++ {
			card, ok := r.draw()
			if !ok {
				return
			}
			p.Hand = append(p.Hand, card)
		}
		p.Score = Score(p.Hand)
		p.Status = StatusPlaying
		if p.Score == 21 {
			p.Status = StatusStand
			p.Result = ResultBlackjack
		}
	}

	for i := 0; i < 2; i++ {
		card, ok := r.draw()
		if !ok {
			return
		}
		r.dealer.Hand = append(r.dealer.Hand, card)
	}
	r.dealer.Score = Score(r.dealer.Hand)
	r.logger.Info("cards dealt", "round", r.round)

	if r.allPlayersDone() {
		r.dealerTurn()
		return
	}
	r.broadcast()
	if r.cfg.PlayTimeout > 0 {
		r.playTimer = r.clock.AfterFunc(r.cfg.PlayTimeout, r.onPlayTimeout)
	}
}

// onPlayTimeout forces every player still deciding to stand so the round can
// resolve without them.
func (r *Room) onPlayTimeout() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhasePlaying {
		return
	}
	for _, p := range r.players {
		if p.Status == StatusPlaying {
			p.Status = StatusStand
		}
	}
	r.logger.Info("play timer expired, forcing stands", "round", r.round)
	r.dealerTurn()
}

// maybeResolve hands the round to the dealer once no player is left playing,
// otherwise publishes the new state.
func (r *Room) maybeResolve() {
	if r.allPlayersDone() {
		r.dealerTurn()
		return
	}
	r.broadcast()
}

func (r *Room) allPlayersDone() bool {
	for _, p := range r.players {
		if p.Status == StatusPlaying {
			return false
		}
	}
	return true
}

// dealerTurn draws for the dealer until the first total of 17 or more, then
// resolves payouts.
func (r *Room) dealerTurn() {
	r.stopTimer(&r.playTimer)
	for r.dealer.Score < 17 {
		card, ok := r.draw()
		if !ok {
			break
		}
		r.dealer.Hand = append(r.dealer.Hand, card)
		r.dealer.Score = Score(r.dealer.Hand)
	}
	r.resolve()
}

// resolve applies the payout policy, reveals the round and schedules the
// next one.
func (r *Room) resolve() {
	r.phase = PhaseFinished
	dealerScore := r.dealer.Score

	for _, p := range r.players {
		bet := p.Bet
		switch {
		case p.Result == ResultBlackjack:
			p.Chips += bet * 3 / 2
		case p.Status == StatusStand || p.Status == StatusBust:
			switch {
			case p.Score > 21:
				p.Result = ResultBust
				p.Chips -= bet
			case dealerScore > 21 || p.Score > dealerScore:
				p.Result = ResultWin
				p.Chips += bet
			case p.Score < dealerScore:
				p.Result = ResultLose
				p.Chips -= bet
			default:
				p.Result = ResultPush
			}
		}
		if p.Chips < 0 {
			p.Chips = 0
		}
	}
	r.logger.Info("round resolved", "round", r.round, "dealerScore", dealerScore)

	r.broadcast()
	r.sendAll(Event{Type: EventNextRoundTimer, Data: TimerPayload{DurationMS: durationMS(r.cfg.RoundEndDelay)}})
	r.roundEndTimer = r.clock.AfterFunc(r.cfg.RoundEndDelay, r.onRoundEnd)
}

// onRoundEnd either opens the next betting phase or, after the final round,
// publishes the standings and halts the room.
func (r *Room) onRoundEnd() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseFinished {
		return
	}
	if r.round >= r.cfg.MaxRounds {
		r.phase = PhaseEnded
		r.logger.Info("all rounds played", "rounds", r.round)
		r.sendAll(Event{Type: EventFinalRanking, Data: FinalRankingPayload{Ranking: r.standings()}})
		return
	}
	r.startBetting()
}

func (r *Room) standings() []Standing {
	ranking := make([]Standing, 0, len(r.players))
	for _, p := range r.players {
		ranking = append(ranking, Standing{Name: p.Name, Chips: p.Chips})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Chips != ranking[j].Chips {
			return ranking[i].Chips > ranking[j].Chips
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}

// draw pulls the next card. A full deck always covers one round, so a failed
// draw means the round is wedged and the caller gives up on the current
// action.
func (r *Room) draw() (deck.Card, bool) {
	card, err := r.deck.Draw()
	if err != nil {
		r.logger.Error("deck exhausted mid-round", "round", r.round, "error", err)
		return deck.Card{}, false
	}
	return card, true
}

// broadcast sends each participant their personalized snapshot.
func (r *Room) broadcast() {
	for handle := range r.players {
		r.sender.Send(handle, Event{Type: EventGameState, Data: r.snapshotFor(handle)})
	}
}

// sendAll sends the same event to every participant.
func (r *Room) sendAll(ev Event) {
	for handle := range r.players {
		r.sender.Send(handle, ev)
	}
}

// reject answers a guard failure, surfaced or silent per configuration.
func (r *Room) reject(handle, reason string) {
	r.logger.Debug("action rejected", "handle", handle, "reason", reason)
	if r.cfg.SurfaceRejections {
		r.sender.Send(handle, Event{Type: EventError, Data: ErrorPayload{Message: reason}})
	}
}

func (r *Room) stopTimers() {
	r.stopTimer(&r.bettingTimer)
	r.stopTimer(&r.playTimer)
	r.stopTimer(&r.roundEndTimer)
}

func (r *Room) stopTimer(t **quartz.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func durationMS(d time.Duration) int {
	return int(d / time.Millisecond)
}
