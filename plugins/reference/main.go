package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pluginrpc "healthquest/internal/modules/minigame/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"minigame", "fullscreen_tty"},
	}, nil
}

func (s *server) ListGames(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListGamesResponse, error) {
	return &pluginrpc.ListGamesResponse{Games: []pluginrpc.GameDescriptor{
		{ID: "jacks", Title: "Jumping Jacks", Description: "Counted jumping jacks round", Kind: "jumping_jacks", DefaultMinutes: 3, TimeoutMS: 2000},
		{ID: "plank", Title: "Plank Hold", Description: "Timed plank hold", Kind: "plank", DefaultMinutes: 2, TimeoutMS: 2000},
		{ID: "breathe", Title: "Box Breathing", Description: "Guided breathing round in the terminal", Kind: "breathing", DefaultMinutes: 5, TimeoutMS: 1500},
	}}, nil
}

func (s *server) Play(_ context.Context, in *pluginrpc.PlayRequest) (*pluginrpc.PlayResponse, error) {
	input := struct {
		Reps    int `json:"reps"`
		Minutes int `json:"minutes"`
	}{}
	if strings.TrimSpace(in.InputJSON) != "" {
		_ = json.Unmarshal([]byte(in.InputJSON), &input)
	}
	switch in.GameID {
	case "jacks":
		minutes := input.Minutes
		if minutes == 0 {
			minutes = 3
		}
		score := input.Reps
		if score == 0 {
			score = minutes * 30
		}
		raw, _ := json.Marshal(map[string]any{"reps": score, "player": in.Context.Player})
		return &pluginrpc.PlayResponse{Kind: "jumping_jacks", Score: int32(score), Minutes: int32(minutes), Stdout: "round complete", OutputJSON: string(raw), ExitCode: 0}, nil
	case "plank":
		minutes := input.Minutes
		if minutes == 0 {
			minutes = 2
		}
		score := minutes * 60
		raw, _ := json.Marshal(map[string]any{"hold_seconds": score})
		return &pluginrpc.PlayResponse{Kind: "plank", Score: int32(score), Minutes: int32(minutes), Stdout: "plank held", OutputJSON: string(raw), ExitCode: 0}, nil
	default:
		return nil, fmt.Errorf("unknown game: %s", in.GameID)
	}
}

func (s *server) PrepareTTY(_ context.Context, in *pluginrpc.PrepareTTYRequest) (*pluginrpc.PrepareTTYResponse, error) {
	if in.GameID != "breathe" {
		return nil, fmt.Errorf("unknown tty game: %s", in.GameID)
	}
	return &pluginrpc.PrepareTTYResponse{
		Argv: []string{"/bin/sh", "-lc", "echo healthquest-reference-breathing"},
		Cwd:  in.Context.Cwd,
		Env: map[string]string{
			"HEALTHQUEST_PLUGIN": "reference",
		},
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
