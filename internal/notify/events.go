// Package notify carries game notifications from a session to whoever
// presents or persists them: the terminal UI, the wallet, the HTTP API.
package notify

// Name identifies an event kind on the bus.
type Name string

const (
	NameScoreUpdate Name = "score-update"
	NameMovesUpdate Name = "moves-update"
	NameSceneReady  Name = "scene-ready"
	NameGameOver    Name = "game-over"
	NameCue         Name = "cue"
)

// Event is implemented by every notification type.
type Event interface {
	Name() Name
}

// ScoreUpdate is sent whenever the session score changes. Total is the new
// score and Delta the points just awarded.
type ScoreUpdate struct {
	Total int `json:"total"`
	Delta int `json:"delta"`
}

func (ScoreUpdate) Name() Name { return NameScoreUpdate }

// MovesUpdate is sent whenever a move is charged.
type MovesUpdate struct {
	Remaining int `json:"remaining"`
}

func (MovesUpdate) Name() Name { return NameMovesUpdate }

// SceneReady is sent once a fresh board has been dealt.
type SceneReady struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (SceneReady) Name() Name { return NameSceneReady }

// EndReason describes why a session ended.
type EndReason string

const (
	EndOutOfMoves EndReason = "out-of-moves"
	EndTimeUp     EndReason = "time-up"
)

// GameOver is sent once when a session becomes terminal.
type GameOver struct {
	Score  int       `json:"score"`
	Reason EndReason `json:"reason"`
}

func (GameOver) Name() Name { return NameGameOver }

// Sound names an audio cue.
type Sound string

const (
	SoundSelect   Sound = "select"
	SoundSwap     Sound = "swap"
	SoundMatch    Sound = "match"
	SoundInvalid  Sound = "invalid"
	SoundGameOver Sound = "game-over"
)

// Cue asks the presentation layer to play a sound.
type Cue struct {
	Sound Sound `json:"sound"`
}

func (Cue) Name() Name { return NameCue }
