package output

import (
	"github.com/lgbarn/duel-chess/internal/worker"
)

// JSONGame represents one replayed game in JSON format.
type JSONGame struct {
	GameID         string `json:"gameId"`
	Valid          bool   `json:"valid"`
	Result         string `json:"result,omitempty"`
	PlyCount       int    `json:"plyCount"`
	Captures       int    `json:"captures,omitempty"`
	Castles        int    `json:"castles,omitempty"`
	EnPassants     int    `json:"enPassants,omitempty"`
	Checks         int    `json:"checks,omitempty"`
	Underpromotion bool   `json:"underpromotion,omitempty"`
	ErrorPly       int    `json:"errorPly,omitempty"`
	Error          string `json:"error,omitempty"`
	FinalBoard     string `json:"finalBoard,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games  []*JSONGame `json:"games"`
	Failed int         `json:"failed"`
}

// GameToJSON converts a replay result to its JSON form. The final board is
// included when withBoard is set.
func GameToJSON(r worker.ProcessResult, withBoard bool) *JSONGame {
	jg := &JSONGame{
		GameID: r.GameID,
		Valid:  !r.Failed(),
	}
	if r.Error != nil {
		jg.Error = r.Error.Error()
		return jg
	}

	if v := r.Validation; v != nil && !v.Valid {
		jg.ErrorPly = v.ErrorPly
		jg.Error = v.ErrorMsg
	}
	if a := r.Analysis; a != nil {
		jg.Result = a.Result()
		jg.PlyCount = a.Plies
		jg.Captures = a.Captures
		jg.Castles = a.Castles
		jg.EnPassants = a.EnPassants
		jg.Checks = a.Checks
		jg.Underpromotion = a.UnderpromotionFound()
		if withBoard && a.FinalBoard != nil {
			jg.FinalBoard = a.FinalBoard.String()
		}
	}
	return jg
}
