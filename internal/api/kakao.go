package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxSkillBody = 1 << 20

// SkillRequest is the subset of a Kakao i Open Builder skill payload we read.
type SkillRequest struct {
	UserRequest struct {
		Utterance string `json:"utterance"`
		User      struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"userRequest"`
	Action struct {
		Params map[string]string `json:"params"`
	} `json:"action"`
}

// CallerID returns the chat platform user id.
func (s *SkillRequest) CallerID() string {
	return strings.TrimSpace(s.UserRequest.User.ID)
}

// Param returns a trimmed action parameter.
func (s *SkillRequest) Param(name string) string {
	return strings.TrimSpace(s.Action.Params[name])
}

// SkillResponse is the envelope the chat platform renders verbatim.
type SkillResponse struct {
	Version  string        `json:"version"`
	Template SkillTemplate `json:"template"`
}

// SkillTemplate holds response outputs.
type SkillTemplate struct {
	Outputs []SkillOutput `json:"outputs"`
}

// SkillOutput is one output bubble.
type SkillOutput struct {
	SimpleText SimpleText `json:"simpleText"`
}

// SimpleText is a plain text bubble.
type SimpleText struct {
	Text string `json:"text"`
}

// NewSkillText wraps text in a version 2.0 simpleText envelope.
func NewSkillText(text string) SkillResponse {
	return SkillResponse{
		Version: "2.0",
		Template: SkillTemplate{
			Outputs: []SkillOutput{{SimpleText: SimpleText{Text: text}}},
		},
	}
}

// SkillText writes text as a skill response. The chat platform expects 200
// with an envelope for every request, including failures.
func SkillText(w http.ResponseWriter, text string) {
	JSON(w, http.StatusOK, NewSkillText(text))
}

// decodeSkill parses a skill payload. A payload without a caller id is
// rejected since every chat operation is keyed by it.
func decodeSkill(r *http.Request) (*SkillRequest, error) {
	var req SkillRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSkillBody)).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode skill request: %w", err)
	}
	if req.CallerID() == "" {
		return nil, fmt.Errorf("skill request without user id")
	}
	return &req, nil
}
