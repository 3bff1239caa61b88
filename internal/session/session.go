// Package session wires the engine, strategies, display, and persistence
// into an interactive table or a closed training loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianjackson/blackjack/internal/config"
	"github.com/ianjackson/blackjack/internal/deck"
	"github.com/ianjackson/blackjack/internal/display"
	"github.com/ianjackson/blackjack/internal/game"
	"github.com/ianjackson/blackjack/internal/gamelog"
	"github.com/ianjackson/blackjack/internal/randutil"
	"github.com/ianjackson/blackjack/internal/rl"
	"github.com/ianjackson/blackjack/internal/statistics"
	"github.com/ianjackson/blackjack/internal/strategy"
)

// Session runs an interactive table until the player quits or everyone is
// out of chips.
type Session struct {
	cfg      *config.Config
	engine   *game.Engine
	renderer *display.Renderer
	in       *bufio.Reader
	logger   *log.Logger
	stats    *statistics.Statistics

	roundLog *gamelog.Writer
	models   map[*rl.Agent]string

	quit bool
}

// New builds a session from configuration. Reads human input from in and
// renders to out.
func New(cfg *config.Config, in io.Reader, out io.Writer, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	seed := cfg.Table.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	shoe, err := deck.NewShoe(rng, cfg.Table.NumDecks)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		renderer: display.NewRenderer(out),
		in:       bufio.NewReader(in),
		logger:   logger.WithPrefix("session"),
		stats:    statistics.New(),
		models:   make(map[*rl.Agent]string),
	}

	players := make([]*game.Player, 0, len(cfg.Players))
	for _, pc := range cfg.Players {
		var strat game.Strategy
		switch pc.Strategy {
		case config.StrategyHuman:
			strat = display.NewHuman(s.in, s.renderer, s.handleCommand)
		case config.StrategyDefault:
			strat = strategy.NewDefault()
		case config.StrategyBook:
			strat = strategy.NewBook()
		case config.StrategyAI:
			agent := rl.LoadAgent(pc.Name, pc.Model, rng, rl.DefaultConfig(), logger)
			s.models[agent] = pc.Model
			strat = agent
		}
		players = append(players, game.NewPlayer(pc.Name, pc.Balance, strat))
	}

	s.engine = game.NewEngine(shoe, players, game.EngineConfig{
		DefaultBet: cfg.Table.DefaultBet,
		DealDelay:  time.Duration(cfg.Table.DealDelayMs) * time.Millisecond,
		OnDeal:     s.renderer.Deal,
	}, logger)
	s.engine.AddObserver(s.stats)

	if cfg.Session.LogGame {
		s.roundLog, err = gamelog.New(cfg.Session.LogDir, time.Now(), logger)
		if err != nil {
			return nil, err
		}
		s.engine.AddObserver(s.roundLog)
	}

	s.logger.Debug("Session ready", "players", len(players), "decks", cfg.Table.NumDecks, "seed", seed)
	return s, nil
}

// Engine exposes the underlying engine, mostly for tests.
func (s *Session) Engine() *game.Engine {
	return s.engine
}

// Run plays rounds until the player quits, input closes, the context is
// cancelled, or every seat is broke. Models and logs are saved on the way
// out regardless of how the session ended.
func (s *Session) Run(ctx context.Context) error {
	defer s.close()

	for !s.quit {
		s.renderer.RoundHeader(s.engine.RoundNumber() + 1)

		record, err := s.engine.PlayRound(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				s.renderer.Message("Round abandoned.")
				return nil
			}
			return err
		}

		if s.engine.Dealer().Hand.NumCards() > 0 {
			s.renderer.DealerReveal(s.engine.Dealer())
		}
		s.renderer.Settlement(*record)

		if s.allBroke() {
			s.renderer.Message("Everyone is out of chips. Game over.")
			break
		}
		if !s.promptContinue() {
			break
		}
	}
	return nil
}

func (s *Session) allBroke() bool {
	for _, p := range s.engine.Players() {
		if p.Balance > 0 {
			return false
		}
	}
	return true
}

// promptContinue asks whether to deal another round. Enter deals; commands
// run and re-prompt.
func (s *Session) promptContinue() bool {
	for {
		s.renderer.Message("Deal another round? [Y/n]")
		line, err := s.in.ReadString('\n')
		text := strings.ToLower(strings.TrimSpace(line))
		if err != nil && text == "" {
			return false
		}

		switch text {
		case "", "y", "yes":
			return true
		case "n", "no", "q", "quit":
			return false
		default:
			if strings.HasPrefix(text, "/") {
				s.handleCommand(text)
				if s.quit {
					return false
				}
				continue
			}
			s.renderer.Error("Unrecognised input %q", text)
		}
		if err != nil {
			return false
		}
	}
}

// handleCommand runs one slash command. Available at every prompt.
func (s *Session) handleCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "/help":
		s.renderer.Message(strings.Join([]string{
			"Commands:",
			"  /help                        show this help",
			"  /exit                        end the session",
			"  /graph                       plot balance history",
			"  /showbalance                 show every balance",
			"  /editbalance <name> <amount> override a balance",
			"  /shuffle                     reshuffle the shoe",
		}, "\n"))

	case "/exit":
		s.quit = true

	case "/graph":
		graph := display.RenderGraph(s.engine.BalanceHistory(), 60, 12)
		if graph == "" {
			s.renderer.Message("No rounds played yet.")
			return
		}
		s.renderer.Message("%s", graph)

	case "/showbalance":
		for _, p := range s.engine.Players() {
			s.renderer.Message("%s: $%.2f", p.Name, p.Balance)
		}

	case "/editbalance":
		if len(fields) != 3 {
			s.renderer.Error("Usage: /editbalance <name> <amount>")
			return
		}
		amount, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || amount < 0 {
			s.renderer.Error("Invalid amount %q", fields[2])
			return
		}
		if !s.engine.SetBalance(fields[1], amount) {
			s.renderer.Error("No player named %q", fields[1])
			return
		}
		s.renderer.Message("%s now has $%.2f", fields[1], amount)

	case "/shuffle":
		s.engine.ForceReshuffle()
		s.renderer.Message("Shoe reshuffled.")

	default:
		s.renderer.Error("Unknown command %s (try /help)", fields[0])
	}
}

// close saves models, flushes the round log, and prints the session wrap-up.
func (s *Session) close() {
	for agent, path := range s.models {
		if path == "" {
			continue
		}
		if err := agent.Save(path); err != nil {
			s.logger.Error("Could not save model", "path", path, "error", err)
		}
	}

	if s.roundLog != nil {
		if err := s.roundLog.Close(); err != nil {
			s.logger.Error("Could not write session log", "error", err)
		}
	}

	if s.stats.Rounds == 0 {
		return
	}

	if s.cfg.Session.ShowGraph {
		if graph := display.RenderGraph(s.engine.BalanceHistory(), 60, 12); graph != "" {
			s.renderer.Message("\nBalance history:\n%s", graph)
		}
	}

	s.renderer.Message("\nSession summary (%d rounds):", s.stats.Rounds)
	for _, ps := range s.stats.Players() {
		s.renderer.Message("  %s: %dW %dL %dP %dBJ, net %+.2f, final $%.2f",
			ps.Name, ps.Wins+ps.Blackjacks, ps.Losses+ps.Busts, ps.Pushes, ps.Blackjacks,
			ps.Net, ps.FinalBalance)
	}
}
