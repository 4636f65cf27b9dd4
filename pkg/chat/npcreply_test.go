package chat

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseNPCReply(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantErr      bool
		wantReply    string
		wantTone     string
		wantMentions int
	}{
		{
			name:         "full reply",
			raw:          `{"npc_reply":"I was in the library.","mentions":["dropped_key"],"tone":"nervous","thinking":"deflect"}`,
			wantReply:    "I was in the library.",
			wantTone:     "nervous",
			wantMentions: 1,
		},
		{
			name:         "defaults for missing optional fields",
			raw:          `{"npc_reply":"Hello."}`,
			wantReply:    "Hello.",
			wantTone:     ToneNeutral,
			wantMentions: 0,
		},
		{
			name:      "markdown fenced payload",
			raw:       "```json\n{\"npc_reply\":\"Fine.\",\"tone\":\"defensive\"}\n```",
			wantReply: "Fine.",
			wantTone:  "defensive",
		},
		{
			name:    "missing npc_reply",
			raw:     `{"tone":"calm"}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			raw:     "I refuse to answer.",
			wantErr: true,
		},
		{
			name:    "empty output",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := ParseNPCReply(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %+v", reply)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if reply.Reply != tt.wantReply {
				t.Errorf("Expected reply %q, got %q", tt.wantReply, reply.Reply)
			}
			if reply.Tone != tt.wantTone {
				t.Errorf("Expected tone %q, got %q", tt.wantTone, reply.Tone)
			}
			if reply.Mentions == nil {
				t.Error("Expected non-nil mentions")
			}
			if len(reply.Mentions) != tt.wantMentions {
				t.Errorf("Expected %d mentions, got %d", tt.wantMentions, len(reply.Mentions))
			}
		})
	}
}

func TestActionRequest_Validate(t *testing.T) {
	req := ActionRequest{}
	if err := req.Validate(); err == nil {
		t.Error("Expected error for missing session id")
	}

	req.SessionID = uuid.New()
	if err := req.Validate(); err == nil {
		t.Error("Expected error for empty text")
	}

	req.Text = "go to library"
	if err := req.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
