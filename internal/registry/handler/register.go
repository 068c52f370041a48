package handler

import (
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/processor"
)

// RegisterAll wires every registry handler into the processor.
// Must be called before the processor starts running.
func RegisterAll(p *processor.CommandProcessor) {
	p.RegisterHandler(command.CmdCreateGame, NewCreateGameHandler())
	p.RegisterHandler(command.CmdUpdateGame, NewUpdateGameHandler())
	p.RegisterHandler(command.CmdCreatePlayer, NewCreatePlayerHandler())
	p.RegisterHandler(command.CmdRegisterPlayer, NewRegisterPlayerHandler())
	p.RegisterHandler(command.CmdAddLeaderboard, NewAddLeaderboardHandler())
	p.RegisterHandler(command.CmdAddAchievement, NewAddAchievementHandler())
	p.RegisterHandler(command.CmdUpdateAchievement, NewUpdateAchievementHandler())
	p.RegisterHandler(command.CmdSubmitScore, NewSubmitScoreHandler())
}
