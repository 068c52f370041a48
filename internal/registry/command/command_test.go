package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/ledger"
)

func TestNewBaseCommand(t *testing.T) {
	base := NewBaseCommand(CmdCreateGame, SourceCLI)

	require.NotEmpty(t, base.ID(), "command should get a generated ID")
	require.Equal(t, CmdCreateGame, base.Type())
	require.Equal(t, SourceCLI, base.Source())
	require.Equal(t, 0, base.Priority())
	require.False(t, base.CreatedAt().IsZero())
}

func TestBaseCommand_TraceID(t *testing.T) {
	base := NewBaseCommand(CmdSubmitScore, SourceInternal)
	require.Empty(t, base.TraceID(), "trace ID should be empty by default")

	base.SetTraceID("manual-trace")
	require.Equal(t, "manual-trace", base.TraceID())
}

func TestCreateGameCommand_Validate(t *testing.T) {
	auth := []ledger.Address{"alice"}

	tests := []struct {
		name    string
		cmd     *CreateGameCommand
		wantErr string
	}{
		{
			name: "valid",
			cmd:  NewCreateGameCommand(SourceCLI, "game-1", "funder-1", "quest", "", "", auth),
		},
		{
			name:    "missing game address",
			cmd:     NewCreateGameCommand(SourceCLI, "", "funder-1", "quest", "", "", auth),
			wantErr: "game address is required",
		},
		{
			name:    "missing funder",
			cmd:     NewCreateGameCommand(SourceCLI, "game-1", "", "quest", "", "", auth),
			wantErr: "funder address is required",
		},
		{
			name:    "missing title",
			cmd:     NewCreateGameCommand(SourceCLI, "game-1", "funder-1", "", "", "", auth),
			wantErr: "title is required",
		},
		{
			name:    "no authorities",
			cmd:     NewCreateGameCommand(SourceCLI, "game-1", "funder-1", "quest", "", "", nil),
			wantErr: "at least one authority is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestAddLeaderboardCommand_ValidateBounds(t *testing.T) {
	cmd := NewAddLeaderboardCommand(SourceCLI, "lb-1", "game-1", "alice", "funder-1", "", 0, 100, 100, 0, false)
	require.ErrorContains(t, cmd.Validate(), "min score 100 must be below max score 100")

	cmd = NewAddLeaderboardCommand(SourceCLI, "lb-1", "game-1", "alice", "funder-1", "", 0, 0, 1000, 0, false)
	require.NoError(t, cmd.Validate())
}

func TestUpdateAchievementCommand_RequiresAField(t *testing.T) {
	cmd := NewUpdateAchievementCommand(SourceCLI, "ach-1", "alice", "funder-1", "", "", "")
	require.ErrorContains(t, cmd.Validate(), "at least one field to update is required")

	cmd = NewUpdateAchievementCommand(SourceCLI, "ach-1", "alice", "funder-1", "", "new desc", "")
	require.NoError(t, cmd.Validate())
}

func TestSubmitScoreCommand_Validate(t *testing.T) {
	cmd := NewSubmitScoreCommand(SourceCLI, "sb-1", "lb-1", "alice", "funder-1", 500, 0)
	require.NoError(t, cmd.Validate())

	cmd = NewSubmitScoreCommand(SourceCLI, "sb-1", "", "alice", "funder-1", 500, 0)
	require.ErrorContains(t, cmd.Validate(), "leaderboard address is required")
}

func TestCommandString(t *testing.T) {
	cmd := NewCreateGameCommand(SourceCLI, "game-1", "funder-1", "quest", "", "", []ledger.Address{"alice"})
	require.Equal(t, `CreateGame{game=game-1, title="quest"}`, cmd.String())
}
