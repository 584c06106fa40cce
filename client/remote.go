package client

import (
	"context"
	"cubetris/cube"
	"cubetris/server"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const callTimeout = 2 * time.Second

// RemoteGame plays a game hosted by a server. It satisfies the same contract
// as cube.Game, except GetUpdate is closed when the server ends the game.
type RemoteGame struct {
	ID string

	client   server.CubeServiceClient
	closer   func() error
	logger   *slog.Logger
	updateCh chan *cube.State
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// DialRemote connects to addr and asks the server for a new game.
func DialRemote(ctx context.Context, addr string, l *slog.Logger) (*RemoteGame, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	g, err := NewRemoteGame(ctx, conn, l)
	if err != nil {
		conn.Close() //nolint: errcheck
		return nil, err
	}
	g.closer = conn.Close
	return g, nil
}

func NewRemoteGame(ctx context.Context, cc grpc.ClientConnInterface, l *slog.Logger) (*RemoteGame, error) {
	client := server.NewCubeServiceClient(cc)
	id, err := client.NewGame(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fmt.Errorf("unable to create a game: %w", err)
	}
	gctx, cancel := context.WithCancel(context.Background())
	return &RemoteGame{
		ID:       id.GetValue(),
		client:   client,
		closer:   func() error { return nil },
		logger:   l.With(slog.String("game_id", id.GetValue())),
		updateCh: make(chan *cube.State, 1),
		ctx:      gctx,
		cancel:   cancel,
	}, nil
}

func (r *RemoteGame) Start() { go r.watch() }

func (r *RemoteGame) GetUpdate() <-chan *cube.State { return r.updateCh }

func (r *RemoteGame) Action(a cube.Action) {
	ctx, cancel := context.WithTimeout(r.ctx, callTimeout)
	defer cancel()
	_, err := r.client.Act(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
		"game_id": structpb.NewStringValue(r.ID),
		"action":  structpb.NewStringValue(string(a)),
	}})
	if err != nil && status.Code(err) != codes.Canceled {
		r.logger.Error("unable to send action", slog.String("action", string(a)), slog.String("error", err.Error()))
	}
}

// Stop ends the game on the server and closes the connection.
func (r *RemoteGame) Stop() {
	r.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		if _, err := r.client.EndGame(ctx, wrapperspb.String(r.ID)); err != nil && status.Code(err) != codes.NotFound {
			r.logger.Error("unable to end game", slog.String("error", err.Error()))
		}
		r.cancel()
		if err := r.closer(); err != nil {
			r.logger.Error("unable to close gRPC client", slog.String("error", err.Error()))
		}
	})
}

func (r *RemoteGame) watch() {
	defer close(r.updateCh)
	stream, err := r.client.Watch(r.ctx, wrapperspb.String(r.ID))
	if err != nil {
		r.logger.Error("unable to watch game", slog.String("error", err.Error()))
		return
	}
	for {
		msg, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.logger.Debug("stream.Recv() closed with EOF")
				return
			}
			st, ok := status.FromError(err)
			if ok && st.Code() == codes.Canceled {
				r.logger.Debug("stream.Recv() closed with Cancel", slog.String("msg", st.Message()))
			} else {
				r.logger.Error("stream.Recv() unable to receive message", slog.String("error", err.Error()))
			}
			return
		}
		s, err := server.StateFromProto(msg)
		if err != nil {
			r.logger.Error("unable to decode state", slog.String("error", err.Error()))
			continue
		}
		r.publish(s)
	}
}

// publish replaces any state the reader hasn't picked up yet.
func (r *RemoteGame) publish(s *cube.State) {
	select {
	case <-r.updateCh:
	default:
	}
	r.updateCh <- s
}
