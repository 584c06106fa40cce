// Package server hosts cube games for remote players over gRPC and lets
// spectators follow them over a websocket.
package server

import (
	"context"
	"cubetris/cube"
	"cubetris/gesture"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// GameFactory builds the game behind a new session.
type GameFactory func(l *slog.Logger) *cube.Game

// session fans the updates of one game out to its watchers.
type session struct {
	id   string
	game *cube.Game

	gestures *gesture.Translator
	gmu      sync.Mutex

	watchers map[chan *cube.State]struct{}
	last     *cube.State
	closed   bool
	done     chan struct{}
	mu       sync.Mutex
}

func newSession(id string, g *cube.Game) *session {
	return &session{
		id:       id,
		game:     g,
		gestures: gesture.NewTranslator(g.Config()),
		watchers: make(map[chan *cube.State]struct{}),
		done:     make(chan struct{}),
	}
}

func (s *session) run() {
	for {
		select {
		case st := <-s.game.GetUpdate():
			s.mu.Lock()
			s.last = st
			for ch := range s.watchers {
				offer(ch, st)
			}
			s.mu.Unlock()
		case <-s.done:
			s.mu.Lock()
			for ch := range s.watchers {
				close(ch)
				delete(s.watchers, ch)
			}
			s.closed = true
			s.mu.Unlock()
			return
		}
	}
}

// subscribe returns a channel that gets the latest state straight away and
// every update after it. It's closed when the session ends.
func (s *session) subscribe() (<-chan *cube.State, func()) {
	ch := make(chan *cube.State, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	if s.last != nil {
		ch <- s.last
	} else {
		ch <- s.game.Read()
	}
	s.watchers[ch] = struct{}{}

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			close(ch)
			delete(s.watchers, ch)
		}
	}
}

func (s *session) end() {
	s.game.Stop()
	close(s.done)
}

// offer replaces a state the watcher hasn't picked up yet.
func offer(ch chan *cube.State, st *cube.State) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}

type Server struct {
	newGame  GameFactory
	sessions map[string]*session
	logger   *slog.Logger
	mu       sync.Mutex
}

// New returns a server whose games all use cfg.
func New(cfg cube.Config, l *slog.Logger) *Server {
	return NewWithFactory(func(l *slog.Logger) *cube.Game { return cube.NewGame(cfg, l) }, l)
}

func NewWithFactory(f GameFactory, l *slog.Logger) *Server {
	if l == nil {
		l = slog.Default()
	}
	return &Server{
		newGame:  f,
		sessions: make(map[string]*session),
		logger:   l,
	}
}

func (s *Server) NewGame(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	id := uuid.New().String()
	logger := s.logger.With(slog.String("game_id", id))
	sess := newSession(id, s.newGame(logger))

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	sess.game.Start()
	go sess.run()
	logger.Info("game created")

	return wrapperspb.String(id), nil
}

// Act applies {"game_id": ..., "action": ...} and answers with the state that
// follows it.
func (s *Server) Act(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	sess, err := s.session(fields["game_id"].GetStringValue())
	if err != nil {
		return nil, err
	}
	a, err := cube.ParseAction(fields["action"].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	sess.game.Action(a)
	return encode(sess.game.Read())
}

// Gesture feeds {"game_id": ..., "left": {...}, "right": {...}} to the
// session's translator. The answer is the state that follows, with an
// "action" field when the frame fired one.
func (s *Server) Gesture(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.session(req.GetFields()["game_id"].GetStringValue())
	if err != nil {
		return nil, err
	}
	body, err := BodyFromProto(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	// frames are counted in the order they arrive.
	sess.gmu.Lock()
	a, fired := sess.gestures.Translate(body)
	sess.gmu.Unlock()
	if fired {
		sess.game.Action(a)
	}

	msg, err := encode(sess.game.Read())
	if err != nil {
		return nil, err
	}
	if fired {
		msg.Fields["action"] = structpb.NewStringValue(string(a))
	}
	return msg, nil
}

func (s *Server) State(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	sess, err := s.session(req.GetValue())
	if err != nil {
		return nil, err
	}
	return encode(sess.game.Read())
}

func (s *Server) EndGame(_ context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	s.mu.Lock()
	sess, ok := s.sessions[req.GetValue()]
	delete(s.sessions, req.GetValue())
	s.mu.Unlock()
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %q not found", req.GetValue())
	}
	sess.end()
	s.logger.Info("game ended", slog.String("game_id", sess.id), slog.Int("score", sess.game.Read().Score))
	return &emptypb.Empty{}, nil
}

// Watch streams every state of a game until the game ends or the client goes away.
func (s *Server) Watch(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	sess, err := s.session(req.GetValue())
	if err != nil {
		return err
	}
	updates, cancel := sess.subscribe()
	defer cancel()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			msg, err := encode(st)
			if err != nil {
				return err
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		}
	}
}

// Close ends every running game.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.end()
	}
}

func (s *Server) session(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %q not found", id)
	}
	return sess, nil
}

func encode(st *cube.State) (*structpb.Struct, error) {
	msg, err := StateToProto(st)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return msg, nil
}

// LoggingInterceptor logs every unary call at debug level.
func LoggingInterceptor(l *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		attrs := []any{slog.String("method", info.FullMethod), slog.String("code", status.Code(err).String())}
		if err != nil {
			l.Warn("call failed", append(attrs, slog.String("error", err.Error()))...)
			return resp, err
		}
		l.Debug("call", attrs...)
		return resp, err
	}
}
