package client

import (
	"context"
	"cubetris/cube"
	"cubetris/server"
	"log"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func testConn(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := server.NewWithFactory(func(*slog.Logger) *cube.Game {
		logic, _ := cube.NewTestLogic(cube.Square, cube.Tee)
		game, _ := cube.NewTestGame(logic)
		return game
	}, nil)
	s := grpc.NewServer()
	server.RegisterCubeServiceServer(s, srv)
	go func() {
		if err := s.Serve(lis); err != nil {
			log.Printf("unable to serve: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("error connecting to server: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		srv.Close()
		s.Stop()
		lis.Close()
	})
	return conn
}

// nextState waits for an update that satisfies ok.
func nextState(t *testing.T, g *RemoteGame, ok func(*cube.State) bool) *cube.State {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case s, open := <-g.GetUpdate():
			if !open {
				t.Fatalf("updates closed")
			}
			if ok(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for a state")
			return nil
		}
	}
}

func TestRemoteGame(t *testing.T) {
	conn := testConn(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	g, err := NewRemoteGame(ctx, conn, slog.Default())
	if err != nil {
		t.Fatalf("unable to create remote game: %v", err)
	}
	if g.ID == "" {
		t.Fatalf("wanted a game id")
	}
	g.Start()
	s := nextState(t, g, func(*cube.State) bool { return true })
	if !s.Running || s.Piece.Type != cube.Square {
		t.Errorf("wanted a running game with a square, got %+v", s)
	}

	g.Action(cube.MoveRight)
	nextState(t, g, func(s *cube.State) bool { return s.Piece.Center.X == 4 })

	g.Action(cube.Drop)
	s = nextState(t, g, func(s *cube.State) bool { return s.Piece.Type == cube.Tee })
	if s.Layers[8].Count != 4 {
		t.Errorf("wanted 4 blocks on the floor slice, got %d", s.Layers[8].Count)
	}

	g.Stop()
	g.Stop()
	_, err = server.NewCubeServiceClient(conn).State(ctx, wrapperspb.String(g.ID))
	if status.Code(err) != codes.NotFound {
		t.Errorf("wanted the game ended on the server, got %v", err)
	}
	select {
	case <-drain(g.GetUpdate()):
	case <-time.After(time.Second):
		t.Errorf("wanted updates to be closed once stopped")
	}
}

func drain(ch <-chan *cube.State) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	return done
}
