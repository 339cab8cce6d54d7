package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/editor"
)

// EditorApplyRequest runs a toolbar command against an editor buffer.
type EditorApplyRequest struct {
	Buffer  editor.Buffer `json:"buffer"`
	Command string        `json:"command"`
	Args    editor.Args   `json:"args"`
}

// EditorApply executes one toolbar command and returns the spliced
// buffer with its new selection.
func (s *Server) EditorApply(w http.ResponseWriter, r *http.Request) {
	var req EditorApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	out, err := editor.Apply(req.Buffer, req.Command, req.Args)
	if err != nil {
		if errors.Is(err, editor.ErrUnknownCommand) {
			WriteError(w, http.StatusBadRequest, "Unknown editor command: "+req.Command)
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, out)
}
