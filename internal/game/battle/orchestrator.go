package battle

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/arena/internal/ai"
	"github.com/udisondev/arena/internal/game/combat"
	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/model"
)

// State is the battle lifecycle state. Victory, Defeat, Fled and Ended
// are terminal.
type State int8

const (
	StateInitializing State = iota
	StateActive
	StateVictory
	StateDefeat
	StateFled
	StateEnded
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateActive:
		return "active"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	case StateFled:
		return "fled"
	default:
		return "ended"
	}
}

// Terminal reports whether no further turns will be processed.
func (s State) Terminal() bool {
	return s != StateInitializing && s != StateActive
}

// Battle result identifiers carried by the battle-ended event.
const (
	ResultVictory = "victory"
	ResultDefeat  = "defeat"
	ResultFled    = "fled"
	ResultError   = "error" // degenerate end: empty turn order
)

// SubmitPlayerAction failure reasons. Caller errors, returned as values.
const (
	ReasonNotActive            = "NotActive"
	ReasonNotYourTurn          = "NotYourTurn"
	ReasonUnknownTarget        = "UnknownTarget"
	ReasonDeadTarget           = "DeadTarget"
	ReasonInsufficientResource = "InsufficientResource"
	ReasonRunDisabled          = "RunDisabled"
)

// SubmitResult is the typed outcome of SubmitPlayerAction.
type SubmitResult struct {
	Accepted bool
	Reason   string
}

// Options tunes one battle. Use DefaultOptions as the baseline; the
// probabilistic constants deliberately stay configurable.
type Options struct {
	Difficulty      ai.Difficulty
	TurnTimeLimitMs int32
	AllowRun        bool
	RunChance       float64 // flee success probability

	PhysicalProcChance float64  // secondary status chance on physical hits
	MagicalProcChance  float64  // secondary status chance on magical hits
	ProcEffects        []string // allowed secondary effect pool
	ProcDurationMs     int32
	DefendDurationMs   int32 // defense_boost duration for the defend action

	ThinkDelayMs int32 // AI deliberation delay before the decision executes
	LogCapacity  int

	ExperienceFactor int32
	CurrencyFactor   int32

	// AutoPilotAllies lets the encounter AI drive ally turns too
	// (batch simulation); interactive drivers leave it false.
	AutoPilotAllies bool

	// Seed fixes the battle RNG for reproducible runs; 0 picks randomly.
	Seed uint64
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		Difficulty:         ai.DifficultyNormal,
		TurnTimeLimitMs:    30000,
		AllowRun:           true,
		RunChance:          0.5,
		PhysicalProcChance: 0.10,
		MagicalProcChance:  0.30,
		ProcEffects:        []string{effect.Poison, effect.Weakness, effect.Slow, effect.Stun},
		ProcDurationMs:     5000,
		DefendDurationMs:   10000,
		ThinkDelayMs:       1000,
		LogCapacity:        DefaultLogCapacity,
		ExperienceFactor:   DefaultExperienceFactor,
		CurrencyFactor:     DefaultCurrencyFactor,
	}
}

// Orchestrator owns one battle: it wires the turn manager, status effect
// engines, damage calculators and encounter AI together, resolves one
// action per turn, and emits lifecycle events.
//
// Externally driven: callers repeatedly invoke Update(elapsedMs) and, for
// player-controlled turns, SubmitPlayerAction. Single-threaded by design.
type Orchestrator struct {
	opts    Options
	rng     *rand.Rand
	sink    Sink
	itemGen ItemGenerator

	state   State
	allies  []*model.Combatant
	enemies []*model.Combatant

	defeatedEnemies []*model.Combatant
	effects         map[uint32]*effect.Engine
	turns           *TurnManager
	log             *Log

	turnElapsedMs  int32
	pending        *pendingAction
	awaitingPlayer bool
	rewards        *Rewards
}

// New creates an orchestrator in the Initializing state.
// sink and itemGen may be nil.
func New(opts Options, sink Sink, itemGen ItemGenerator) *Orchestrator {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Orchestrator{
		opts:    opts,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sink:    sink,
		itemGen: itemGen,
		state:   StateInitializing,
		effects: make(map[uint32]*effect.Engine),
		turns:   NewTurnManager(),
		log:     NewLog(opts.LogCapacity),
	}
}

// Start validates the rosters and transitions Initializing → Active.
// Dead combatants are dropped; combatant IDs must be unique.
func (o *Orchestrator) Start(allies, enemies []*model.Combatant) error {
	if o.state != StateInitializing {
		return fmt.Errorf("battle already started (state %s)", o.state)
	}
	if len(allies) == 0 || len(enemies) == 0 {
		return fmt.Errorf("both sides must be non-empty: %d allies, %d enemies", len(allies), len(enemies))
	}

	seen := make(map[uint32]struct{}, len(allies)+len(enemies))
	add := func(c *model.Combatant) error {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate combatant id %d (%s)", c.ID, c.Name)
		}
		seen[c.ID] = struct{}{}
		o.effects[c.ID] = effect.NewEngine(c)
		return nil
	}
	for _, c := range allies {
		if !c.IsAlive() {
			continue
		}
		if err := add(c); err != nil {
			return err
		}
		o.allies = append(o.allies, c)
	}
	for _, c := range enemies {
		if !c.IsAlive() {
			continue
		}
		if err := add(c); err != nil {
			return err
		}
		o.enemies = append(o.enemies, c)
	}
	if len(o.allies) == 0 || len(o.enemies) == 0 {
		return fmt.Errorf("both sides need a living combatant")
	}

	o.turns.Initialize(o.allies, o.enemies)
	o.state = StateActive
	o.log.Append(1, "Battle joined: %d against %d", len(o.allies), len(o.enemies))
	slog.Info("battle started",
		"allies", len(o.allies),
		"enemies", len(o.enemies),
		"difficulty", o.opts.Difficulty)
	o.emit(Event{Type: EventBattleStarted})
	return nil
}

// Update advances the simulation by elapsedMs.
//
// Status effects of the current turn holder always tick before its action
// resolves, so a stun applied this step blocks the action and
// damage-over-time can kill before the action executes.
func (o *Orchestrator) Update(elapsedMs int32) {
	if o.state != StateActive || elapsedMs <= 0 {
		return
	}
	entry := o.turns.Current()
	if entry == nil {
		o.forceEnd()
		return
	}
	actor := entry.Combatant
	round := o.turns.Round()

	// Tick-before-act for the current holder.
	eng := o.effects[actor.ID]
	tick := eng.Tick(elapsedMs)
	if tick.Damage > 0 {
		o.log.Append(round, "%s suffers %d damage from lingering effects", actor.Name, tick.Damage)
	}
	if tick.Healing > 0 {
		o.log.Append(round, "%s recovers %d health from lingering effects", actor.Name, tick.Healing)
	}
	for _, id := range tick.Expired {
		o.emit(Event{Type: EventStatusRemoved, Combatant: actor, EffectID: id})
	}
	if actor.IsDead() {
		o.handleDefeat(actor)
		if !o.checkEnd() {
			o.nextTurn()
		}
		return
	}
	if eng.PreventsActing() {
		o.log.Append(round, "%s is stunned and cannot act", actor.Name)
		o.nextTurn()
		return
	}

	if o.playerControlled(actor) {
		o.awaitingPlayer = true
		o.turnElapsedMs += elapsedMs
		if o.turnElapsedMs > o.opts.TurnTimeLimitMs {
			o.log.Append(round, "%s hesitates too long; the turn is forfeit", actor.Name)
			slog.Debug("turn timed out", "combatant", actor.Name, "limit_ms", o.opts.TurnTimeLimitMs)
			o.nextTurn()
		}
		return
	}

	// AI turn: decide once, execute after the think delay.
	if o.pending == nil {
		o.pending = o.decideFor(actor)
		return
	}
	o.turnElapsedMs += elapsedMs
	if o.turnElapsedMs > o.opts.TurnTimeLimitMs {
		o.log.Append(round, "%s hesitates too long; the turn is forfeit", actor.Name)
		o.nextTurn()
		return
	}
	if o.pending.tick(elapsedMs) {
		p := o.pending
		o.pending = nil
		o.resolveAction(p.actor, p.action, p.target)
		if o.state == StateActive {
			o.nextTurn()
		}
	}
}

// decideFor asks the encounter AI for a decision and wraps it in a
// deferred handle. A nil decision (empty action set) substitutes a
// default attack on the first living opponent so the turn never stalls.
func (o *Orchestrator) decideFor(actor *model.Combatant) *pendingAction {
	own, opposing := o.rosterOf(actor.Side), o.rosterOf(actor.Side.Opposite())
	dec := ai.Decide(o.rng, actor, own, opposing, o.opts.Difficulty)
	if dec == nil {
		dec = &ai.Decision{Action: model.DefaultAttack, Target: firstLiving(opposing)}
	}
	if dec.Target == nil {
		// No living opponent left; end conditions will catch this.
		dec.Target = actor
		dec.Action = model.Action{Kind: model.ActionDefend, Name: "Wait"}
	}
	return &pendingAction{
		actor:       actor,
		action:      dec.Action,
		target:      dec.Target,
		remainingMs: o.opts.ThinkDelayMs,
	}
}

// SubmitPlayerAction resolves the current player-controlled turn.
// Run and defend self-target; targetID is ignored for them.
func (o *Orchestrator) SubmitPlayerAction(actorID uint32, action model.Action, targetID uint32) SubmitResult {
	if o.state != StateActive {
		return SubmitResult{Reason: ReasonNotActive}
	}
	entry := o.turns.Current()
	if entry == nil {
		o.forceEnd()
		return SubmitResult{Reason: ReasonNotActive}
	}
	actor := entry.Combatant
	if !o.awaitingPlayer || actor.ID != actorID {
		return SubmitResult{Reason: ReasonNotYourTurn}
	}
	if action.Kind == model.ActionRun && !o.opts.AllowRun {
		return SubmitResult{Reason: ReasonRunDisabled}
	}

	target := actor
	if action.Kind != model.ActionRun && action.Kind != model.ActionDefend {
		target = o.findCombatant(targetID)
		if target == nil {
			return SubmitResult{Reason: ReasonUnknownTarget}
		}
		if target.IsDead() {
			return SubmitResult{Reason: ReasonDeadTarget}
		}
	}
	if actor.Resource() < action.Cost {
		return SubmitResult{Reason: ReasonInsufficientResource}
	}

	o.awaitingPlayer = false
	o.resolveAction(actor, action, target)
	if o.state == StateActive {
		o.nextTurn()
	}
	return SubmitResult{Accepted: true}
}

// resolveAction dispatches one action and applies its mutations.
func (o *Orchestrator) resolveAction(actor *model.Combatant, action model.Action, target *model.Combatant) {
	round := o.turns.Round()
	actor.SpendResource(action.Cost)

	switch action.Kind {
	case model.ActionAttack:
		res := combat.Physical(o.rng, actor, target, action.Power)
		if res.Dodged {
			o.log.Append(round, "%s attacks %s, but %s dodges", actor.Name, target.Name, target.Name)
			break
		}
		target.ReduceHP(res.Damage)
		o.log.Append(round, "%s hits %s for %d damage%s", actor.Name, target.Name, res.Damage, hitSuffix(res))
		o.maybeProc(target, o.opts.PhysicalProcChance)

	case model.ActionMagic:
		if action.Healing {
			res := combat.Healing(actor, target, action.Power)
			target.Heal(res.Amount)
			o.log.Append(round, "%s casts %s, healing %s for %d", actor.Name, action.Name, target.Name, res.Amount)
			break
		}
		res := combat.Magical(actor, target, action.Power, action.Element)
		target.ReduceHP(res.Damage)
		note := ""
		if res.Resisted {
			note = " (resisted)"
		}
		o.log.Append(round, "%s blasts %s with %s for %d damage%s", actor.Name, target.Name, action.Name, res.Damage, note)
		o.maybeProc(target, o.opts.MagicalProcChance)

	case model.ActionItem:
		switch {
		case action.Healing:
			res := combat.Healing(actor, target, action.Power)
			target.Heal(res.Amount)
			o.log.Append(round, "%s uses %s on %s, restoring %d health", actor.Name, action.Name, target.Name, res.Amount)
		case action.EffectID != "":
			o.applyStatus(target, action.EffectID, o.opts.ProcDurationMs)
		default:
			o.log.Append(round, "%s uses %s, but nothing happens", actor.Name, action.Name)
		}

	case model.ActionDefend:
		o.log.Append(round, "%s braces behind their guard", actor.Name)
		o.applyStatus(actor, effect.DefenseBoost, o.opts.DefendDurationMs)

	case model.ActionRun:
		if !o.opts.AllowRun {
			o.log.Append(round, "%s looks for an exit, but there is none", actor.Name)
			return
		}
		if o.rng.Float64() < o.opts.RunChance {
			o.log.Append(round, "%s flees the battle", actor.Name)
			o.conclude(StateFled, ResultFled)
			return
		}
		o.log.Append(round, "%s tries to flee, but fails", actor.Name)
	}

	if target.IsDead() {
		o.handleDefeat(target)
	}
	if actor != target && actor.IsDead() {
		o.handleDefeat(actor)
	}
	o.checkEnd()
}

func hitSuffix(res combat.PhysicalResult) string {
	switch {
	case res.Critical && res.Blocked:
		return " (critical, blocked)"
	case res.Critical:
		return " (critical)"
	case res.Blocked:
		return " (blocked)"
	default:
		return ""
	}
}

// maybeProc rolls the secondary-status chance and applies one effect
// drawn uniformly from the configured pool.
func (o *Orchestrator) maybeProc(target *model.Combatant, chance float64) {
	if chance <= 0 || len(o.opts.ProcEffects) == 0 || target.IsDead() {
		return
	}
	if o.rng.Float64() >= chance {
		return
	}
	id := o.opts.ProcEffects[o.rng.IntN(len(o.opts.ProcEffects))]
	o.applyStatus(target, id, o.opts.ProcDurationMs)
}

// applyStatus routes a status application through the target's engine,
// narrating the typed outcome. Internal callers must not assume success.
func (o *Orchestrator) applyStatus(target *model.Combatant, id string, durationMs int32) effect.ApplyResult {
	round := o.turns.Round()
	eng := o.effects[target.ID]
	if eng == nil {
		return effect.ApplyResult{Reason: effect.ReasonUnknownEffect}
	}
	res := eng.Apply(o.rng, id, durationMs, 1)
	switch res.Reason {
	case effect.ReasonApplied:
		o.log.Append(round, "%s is affected by %s", target.Name, effectName(id))
		o.emit(Event{Type: EventStatusApplied, Combatant: target, EffectID: id})
	case effect.ReasonRefreshed:
		o.log.Append(round, "%s's %s intensifies", target.Name, effectName(id))
	case effect.ReasonImmune:
		o.log.Append(round, "%s is immune to %s", target.Name, effectName(id))
	case effect.ReasonResisted:
		o.log.Append(round, "%s resists %s", target.Name, effectName(id))
	case effect.ReasonUnknownEffect:
		slog.Warn("unknown status effect requested", "effect", id, "target", target.Name)
	}
	return res
}

func effectName(id string) string {
	if d, ok := effect.Lookup(id); ok {
		return d.Name
	}
	return id
}

// handleDefeat removes a dead combatant from the turn order and its
// roster exactly once. The turn-manager removal doubles as the guard.
func (o *Orchestrator) handleDefeat(c *model.Combatant) {
	if !o.turns.Remove(c) {
		return
	}
	o.effects[c.ID].RemoveAll()
	if c.Side == model.SideEnemy {
		o.enemies = removeFrom(o.enemies, c)
		o.defeatedEnemies = append(o.defeatedEnemies, c)
	} else {
		o.allies = removeFrom(o.allies, c)
	}
	o.log.Append(o.turns.Round(), "%s has been defeated", c.Name)
	slog.Debug("combatant defeated", "name", c.Name, "side", c.Side)
	o.emit(Event{Type: EventCombatantDefeated, Combatant: c})
}

// checkEnd evaluates end conditions. Returns true on a terminal transition.
func (o *Orchestrator) checkEnd() bool {
	if o.state != StateActive {
		return true
	}
	if len(o.enemies) == 0 {
		o.rewards = computeRewards(
			o.defeatedEnemies, len(o.allies),
			o.opts.ExperienceFactor, o.opts.CurrencyFactor, o.itemGen)
		o.conclude(StateVictory, ResultVictory)
		return true
	}
	if len(o.allies) == 0 {
		o.conclude(StateDefeat, ResultDefeat)
		return true
	}
	if o.turns.Empty() {
		o.forceEnd()
		return true
	}
	return false
}

// forceEnd handles the degenerate empty-turn-order condition: a forced
// Ended transition with a distinguishable error result, never a panic.
func (o *Orchestrator) forceEnd() {
	o.log.Append(o.turns.Round(), "the battle collapses into confusion")
	slog.Error("turn order empty while battle active")
	o.conclude(StateEnded, ResultError)
}

// conclude performs a terminal transition: cancels any pending AI action
// and emits the battle-ended event with result, rewards and survivors.
func (o *Orchestrator) conclude(state State, result string) {
	o.state = state
	if o.pending != nil {
		o.pending.cancel()
		o.pending = nil
	}
	o.awaitingPlayer = false
	slog.Info("battle ended",
		"result", result,
		"round", o.turns.Round(),
		"survivors", len(o.allies)+len(o.enemies))
	o.emit(Event{
		Type:      EventBattleEnded,
		Result:    result,
		Rewards:   o.rewards,
		Survivors: o.Survivors(),
	})
}

// nextTurn resets per-turn bookkeeping and advances the turn order.
func (o *Orchestrator) nextTurn() {
	o.turnElapsedMs = 0
	o.awaitingPlayer = false
	if o.pending != nil {
		o.pending.cancel()
		o.pending = nil
	}
	o.turns.Advance()
	if o.turns.Empty() {
		o.forceEnd()
	}
}

func (o *Orchestrator) playerControlled(c *model.Combatant) bool {
	return c.Side == model.SideAlly && !o.opts.AutoPilotAllies
}

func (o *Orchestrator) rosterOf(side model.Side) []*model.Combatant {
	if side == model.SideAlly {
		return o.allies
	}
	return o.enemies
}

func (o *Orchestrator) findCombatant(id uint32) *model.Combatant {
	for _, c := range o.allies {
		if c.ID == id {
			return c
		}
	}
	for _, c := range o.enemies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func removeFrom(roster []*model.Combatant, c *model.Combatant) []*model.Combatant {
	for i, x := range roster {
		if x == c {
			return append(roster[:i], roster[i+1:]...)
		}
	}
	return roster
}

func firstLiving(roster []*model.Combatant) *model.Combatant {
	for _, c := range roster {
		if c.IsAlive() {
			return c
		}
	}
	return nil
}

// --- Read-only views for rendering layers ---

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Round returns the current round number.
func (o *Orchestrator) Round() int32 { return o.turns.Round() }

// CurrentTurn returns the current turn entry, or nil.
func (o *Orchestrator) CurrentTurn() *TurnEntry { return o.turns.Current() }

// TurnOrder returns a snapshot of the turn sequence.
func (o *Orchestrator) TurnOrder() []TurnEntry { return o.turns.Entries() }

// LogEntries returns the battle log, oldest first.
func (o *Orchestrator) LogEntries() []LogEntry { return o.log.Entries() }

// ActiveStatuses returns the active status effects on a combatant.
func (o *Orchestrator) ActiveStatuses(combatantID uint32) []*effect.Active {
	eng := o.effects[combatantID]
	if eng == nil {
		return nil
	}
	return eng.ActiveEffects()
}

// Effects exposes a combatant's effect engine (driver-level access).
func (o *Orchestrator) Effects(combatantID uint32) *effect.Engine {
	return o.effects[combatantID]
}

// AwaitingPlayer reports whether the battle is blocked on a player action.
func (o *Orchestrator) AwaitingPlayer() bool { return o.awaitingPlayer }

// Rewards returns the victory payload, or nil before victory.
func (o *Orchestrator) Rewards() *Rewards { return o.rewards }

// Survivors returns all living combatants on both sides.
func (o *Orchestrator) Survivors() []*model.Combatant {
	out := make([]*model.Combatant, 0, len(o.allies)+len(o.enemies))
	out = append(out, o.allies...)
	out = append(out, o.enemies...)
	return out
}

// Allies returns the living ally roster.
func (o *Orchestrator) Allies() []*model.Combatant { return o.allies }

// Enemies returns the living enemy roster.
func (o *Orchestrator) Enemies() []*model.Combatant { return o.enemies }

// DefeatedEnemies returns enemies removed by defeat, in defeat order.
func (o *Orchestrator) DefeatedEnemies() []*model.Combatant { return o.defeatedEnemies }
