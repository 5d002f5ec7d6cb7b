package service

import (
	"errors"
	"fmt"
	"io"
	"log"

	"chessmate/internal/board"
	"chessmate/internal/core"
	"chessmate/internal/game"
	"chessmate/internal/player"
)

// NewGame validates the request, builds both players and registers the
// game under a fresh ID
func (s *Service) NewGame(req core.NewGameRequest, in player.LineReader, out io.Writer, logger *log.Logger) (string, error) {
	if err := core.Validate(req); err != nil {
		return "", err
	}

	white, err := player.FromConfig(req.White, in, out, logger)
	if err != nil {
		return "", fmt.Errorf("white player: %w", err)
	}
	black, err := player.FromConfig(req.Black, in, out, logger)
	if err != nil {
		return "", fmt.Errorf("black player: %w", err)
	}

	id := s.GenerateGameID()
	if err := s.CreateGame(id, white, black, req.FEN); err != nil {
		return "", err
	}
	return id, nil
}

// CreateGame registers a new game with pre-constructed players. An empty
// FEN starts from the standard position.
func (s *Service) CreateGame(id string, whitePlayer, blackPlayer *player.Player, initialFEN string) error {
	b := board.New()
	if initialFEN != "" {
		var err error
		if b, err = board.ParseFEN(initialFEN); err != nil {
			return err
		}
	}

	g, err := game.New(b, whitePlayer, blackPlayer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s already exists", id)
	}
	s.games[id] = g
	return nil
}

// ApplyMove plays a move for the side to move and updates the game state
func (s *Service) ApplyMove(gameID string, m core.Move) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	if g.State().IsOver() {
		return nil, fmt.Errorf("%w: %s", core.ErrGameOver, g.State())
	}

	mover := g.NextTurn()
	next, err := g.CurrentBoard().Apply(m)
	if err != nil {
		return nil, err
	}

	// Add the new position to game history
	g.AddSnapshot(next, m, mover)
	g.SetState(next.State())

	result := &game.MoveResult{
		Move:      m,
		Player:    mover,
		GameState: g.State(),
	}
	g.SetLastResult(result)
	return result, nil
}

// PlayTurn asks the player to move and applies the move. Human signals
// (ErrUndo, ErrQuit) are returned unchanged; an illegal or unparseable
// submission comes back as *core.InputError so the caller can report it
// and ask again.
func (s *Service) PlayTurn(gameID string) (*game.MoveResult, error) {
	g, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	state, b, p := g.State(), g.CurrentBoard(), g.NextPlayer()
	s.mu.RUnlock()

	if state.IsOver() {
		return nil, fmt.Errorf("%w: %s", core.ErrGameOver, state)
	}

	// May block on human input, so no lock is held here
	m, ok, err := p.MakeMove(b)
	if err != nil {
		return nil, err
	}

	if !ok {
		return s.endWithoutMove(gameID, g, p.Color())
	}

	result, err := s.ApplyMove(gameID, m)
	if errors.Is(err, core.ErrIllegalMove) {
		return nil, &core.InputError{From: m.From.String(), To: m.To.String(), Err: err}
	}
	return result, err
}

// endWithoutMove settles a game where the side to move had nothing to play
func (s *Service) endWithoutMove(gameID string, g *game.Game, c core.Color) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := g.CurrentBoard().State()
	if !state.IsOver() {
		return nil, fmt.Errorf("game %s: %s has no move in an ongoing position", gameID, c.Name())
	}
	g.SetState(state)

	result := &game.MoveResult{Player: c, GameState: state, NoMove: true}
	g.SetLastResult(result)
	return result, nil
}

// ReportOutcome lets the players announce the result, last mover first.
// At most one message is printed.
func (s *Service) ReportOutcome(gameID string) (core.State, error) {
	g, err := s.GetGame(gameID)
	if err != nil {
		return core.StateOngoing, err
	}

	s.mu.RLock()
	b := g.CurrentBoard()
	first := g.LastMover()
	s.mu.RUnlock()

	if first == 0 {
		first = core.OppositeColor(b.Turn())
	}
	for _, c := range []core.Color{first, core.OppositeColor(first)} {
		if state := g.Player(c).ReportOutcome(b); state.IsOver() {
			return state, nil
		}
	}
	return core.StateOngoing, nil
}

// UndoMoves removes the specified number of moves from game history
func (s *Service) UndoMoves(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	if err := g.UndoMoves(count); err != nil {
		return err
	}
	g.SetState(g.CurrentBoard().State())
	return nil
}

// UndoToHuman takes back moves until a human is to move again, at least
// one move. Returns the number of moves undone.
func (s *Service) UndoToHuman(gameID string) (int, error) {
	g, err := s.GetGame(gameID)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	count := 0
	for n := 1; n <= g.Ply(); n++ {
		turn := g.SnapshotAt(g.Ply() - n).Board.Turn()
		if g.Player(turn).IsHuman() {
			count = n
			break
		}
	}
	s.mu.RUnlock()

	if count == 0 {
		return 0, fmt.Errorf("nothing to undo")
	}
	if err := s.UndoMoves(gameID, count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetCurrentBoard returns the current position of a game
func (s *Service) GetCurrentBoard(gameID string) (*board.Board, error) {
	g, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return g.CurrentBoard(), nil
}
