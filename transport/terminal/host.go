package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
	"github.com/wricardo/mcp-training/hoppingstones/game/service"
)

const helpText = `Commands:
  row col    click a cell, e.g. "0 1" or "(0,1)"
  reset      start a new game on the same layout
  history    list the moves played so far
  help       show this help
  quit       leave the game
`

// Host drives one session from line-oriented input
type Host struct {
	service   service.GameService
	sessionID string
	players   service.Players
	in        io.Reader
	out       *termenv.Output
	renderer  *Renderer
	logger    *zap.Logger
}

// NewHost creates a host for an existing session
func NewHost(svc service.GameService, sessionID string, in io.Reader, out *termenv.Output, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		service:   svc,
		sessionID: sessionID,
		players:   service.DefaultPlayers(),
		in:        in,
		out:       out,
		renderer:  NewRenderer(out, DefaultTheme()),
		logger:    logger,
	}
}

// Run reads commands until quit, end of input or ctx is done
func (h *Host) Run(ctx context.Context) error {
	info, err := h.service.GetSession(ctx, h.sessionID)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	h.players = info.Players

	fmt.Fprintf(h.out, "Hopping Stones: %s vs %s on %q (session %s)\n", h.players.First, h.players.Second, info.GameConfig.Name, info.ID)
	fmt.Fprint(h.out, "Type help for commands.\n\n")
	h.show(info.Snapshot)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(h.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(h.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := h.handle(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// handle processes one input line and reports whether the host should stop
func (h *Host) handle(ctx context.Context, line string) (bool, error) {
	cmd, row, col, err := ParseLine(line)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			fmt.Fprintf(h.out, "%v. Type help for commands.\n", err)
			return false, nil
		}
		return false, err
	}

	switch cmd {
	case CommandNone:
		return false, nil

	case CommandQuit:
		fmt.Fprintln(h.out, "Bye.")
		return true, nil

	case CommandHelp:
		fmt.Fprint(h.out, helpText)
		return false, nil

	case CommandReset:
		snap, err := h.service.Reset(ctx, h.sessionID)
		if err != nil {
			return false, fmt.Errorf("failed to reset: %w", err)
		}
		fmt.Fprintln(h.out, "New game.")
		h.show(snap)
		return false, nil

	case CommandHistory:
		return false, h.printHistory(ctx)

	default:
		return false, h.click(ctx, row, col)
	}
}

func (h *Host) click(ctx context.Context, row, col int) error {
	result, err := h.service.Click(ctx, h.sessionID, row, col)
	if err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}

	if !result.Accepted {
		if result.Snapshot.GameOver {
			fmt.Fprintln(h.out, "The game is over. Type reset to play again or quit to leave.")
		} else {
			fmt.Fprintf(h.out, "(%d,%d) is not selectable.\n", row, col)
		}
		return nil
	}

	for _, ev := range result.Events {
		if ev.Type == service.EventStoneMoved {
			fmt.Fprintf(h.out, "%s moved %s -> %s\n", h.players.Name(engine.SideForTurn(result.Snapshot.Turn-1)), ev.From, ev.To)
		}
	}
	h.show(result.Snapshot)
	return nil
}

func (h *Host) printHistory(ctx context.Context) error {
	resp, err := h.service.GetMoveHistory(ctx, h.sessionID, service.HistoryOptions{Limit: 100, Order: "asc"})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if resp.TotalMoves == 0 {
		fmt.Fprintln(h.out, "No moves yet.")
		return nil
	}
	for _, move := range resp.Moves {
		fmt.Fprintf(h.out, "%3d. %-8s %s -> %s (%s)\n", move.MoveNumber, h.players.Name(move.Side), move.From, move.To, move.Direction)
	}
	if resp.HasNext {
		fmt.Fprintf(h.out, "... %d moves in total\n", resp.TotalMoves)
	}
	return nil
}

func (h *Host) show(snap *engine.Snapshot) {
	fmt.Fprint(h.out, h.renderer.Board(snap))
	fmt.Fprintln(h.out, h.renderer.Status(snap, h.players.Name))
}
